package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campusevents/models"
)

// GET /events
func (d *deps) getEvents(c *gin.Context) {
	var events []models.Event
	var err error

	if club := c.Query("club"); club != "" {
		events, err = d.Events.GetByClub(club)
	} else {
		events, err = d.Events.GetAll()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch events. Try again later."})
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// GET /events/:id
func (d *deps) getEvent(c *gin.Context) {
	event, err := d.Events.GetByID(c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch event. Try again later."})
		return
	}
	c.JSON(http.StatusOK, event)
}

// POST /events
func (d *deps) createEvent(c *gin.Context) {
	sess := sessionFrom(c)
	if !isEventAdmin(sess) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to create events."})
		return
	}

	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if event.Capacity < 0 || event.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Capacity and price must not be negative."})
		return
	}

	event.AdminID = sess.UserID
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.CreatedAt = time.Now()
	// Club admins only create events for their own club.
	if !sess.IsAdmin && sess.Role == models.RoleClubAdmin {
		event.ClubID = sess.ClubID
	}

	if err := d.Events.Create(&event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create event. Try again later."})
		return
	}

	if d.Inv != nil {
		d.Inv.PurgeEvents(c)
	}
	c.JSON(http.StatusCreated, gin.H{"message": "event created!", "event": event})
}

// PUT /events/:id
func (d *deps) updateEvent(c *gin.Context) {
	id := c.Param("id")
	sess := sessionFrom(c)

	old, err := d.Events.GetByID(id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch the event. Try again later."})
		return
	}
	if !sess.CanManage(old) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to update event."})
		return
	}

	var incoming models.Event
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if incoming.Capacity < 0 || incoming.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Capacity and price must not be negative."})
		return
	}
	incoming.ID = id
	incoming.AdminID = old.AdminID
	incoming.ClubID = old.ClubID
	incoming.CreatedAt = old.CreatedAt

	if err := d.Events.Update(&incoming); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update event. Try again later."})
		return
	}

	if d.Inv != nil {
		d.Inv.PurgeEvents(c)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully!"})
}

// DELETE /events/:id
func (d *deps) deleteEvent(c *gin.Context) {
	id := c.Param("id")
	sess := sessionFrom(c)

	ev, err := d.Events.GetByID(id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch the event. Try again later."})
		return
	}
	if !sess.CanManage(ev) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to delete event."})
		return
	}

	if err := d.Events.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete the event."})
		return
	}

	if d.Inv != nil {
		d.Inv.PurgeEvents(c)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully!"})
}
