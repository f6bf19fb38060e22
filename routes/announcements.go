package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campusevents/models"
)

// GET /announcements
func (d *deps) getAnnouncements(c *gin.Context) {
	var anns []models.Announcement
	var err error

	if club := c.Query("club"); club != "" {
		anns, err = d.Announcements.GetByClub(club)
	} else {
		anns, err = d.Announcements.GetAll()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch announcements. Try again later."})
		return
	}
	if anns == nil {
		anns = []models.Announcement{}
	}
	c.JSON(http.StatusOK, anns)
}

// POST /announcements
func (d *deps) createAnnouncement(c *gin.Context) {
	sess := sessionFrom(c)
	if !isEventAdmin(sess) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to create announcements."})
		return
	}

	var ann models.Announcement
	if err := c.ShouldBindJSON(&ann); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	ann.ID = uuid.NewString()
	ann.AdminID = sess.UserID
	ann.Likes = 0
	ann.CreatedAt = time.Now()
	if !sess.IsAdmin && sess.Role == models.RoleClubAdmin {
		ann.ClubID = sess.ClubID
	}

	if err := d.Announcements.Create(&ann); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create announcement. Try again later."})
		return
	}

	if d.Inv != nil {
		d.Inv.PurgeAnnouncements(c)
	}
	c.JSON(http.StatusCreated, gin.H{"message": "announcement created!", "announcement": ann})
}

// DELETE /announcements/:id
func (d *deps) deleteAnnouncement(c *gin.Context) {
	sess := sessionFrom(c)
	if !isEventAdmin(sess) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to delete announcements."})
		return
	}

	if err := d.Announcements.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete the announcement."})
		return
	}

	if d.Inv != nil {
		d.Inv.PurgeAnnouncements(c)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully!"})
}

// POST /announcements/:id/like
func (d *deps) likeAnnouncement(c *gin.Context) {
	err := d.Announcements.Like(c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Announcement not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not like the announcement."})
		return
	}

	if d.Inv != nil {
		d.Inv.PurgeAnnouncements(c)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Liked!"})
}
