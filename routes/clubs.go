package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campusevents/models"
)

// GET /clubs
func (d *deps) getClubs(c *gin.Context) {
	clubs, err := d.Clubs.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch clubs. Try again later."})
		return
	}
	if clubs == nil {
		clubs = []models.Club{}
	}
	c.JSON(http.StatusOK, clubs)
}

// GET /clubs/:id
func (d *deps) getClub(c *gin.Context) {
	club, err := d.Clubs.GetByID(c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Club not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch club. Try again later."})
		return
	}
	c.JSON(http.StatusOK, club)
}

// POST /clubs (global admin only)
func (d *deps) createClub(c *gin.Context) {
	sess := sessionFrom(c)
	if !sess.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to create clubs."})
		return
	}

	var club models.Club
	if err := c.ShouldBindJSON(&club); err != nil || club.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	club.ID = uuid.NewString()
	club.CreatedAt = time.Now()

	if err := d.Clubs.Create(&club); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create club. Try again later."})
		return
	}

	if d.Inv != nil {
		d.Inv.PurgeClubs(c)
	}
	c.JSON(http.StatusCreated, gin.H{"message": "club created!", "club": club})
}
