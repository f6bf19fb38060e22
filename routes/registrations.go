package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campusevents/ledger"
	"campusevents/models"
)

// ledgerStatus maps ledger error kinds to HTTP responses.
func ledgerStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound, "Not found."
	case errors.Is(err, ledger.ErrForbidden):
		return http.StatusForbidden, "Not authorized for this action."
	case errors.Is(err, ledger.ErrDuplicateRegistration):
		return http.StatusConflict, "Already registered for this event."
	case errors.Is(err, ledger.ErrInvalidTransition):
		return http.StatusConflict, "Invalid status change."
	default:
		return http.StatusInternalServerError, "Could not complete the request. Try again later."
	}
}

// POST /events/:id/register
func (d *deps) registerForEvent(c *gin.Context) {
	sess := sessionFrom(c)
	eventID := c.Param("id")

	var req struct {
		Message string `json:"message"`
	}
	_ = c.ShouldBindJSON(&req) // body is optional for a plain RSVP

	reg, err := d.Ledger.Register(sess, eventID, req.Message)
	if errors.Is(err, ledger.ErrPaymentRequired) {
		// Paid events go through the hosted checkout; registration is
		// recorded on the confirm callback.
		c.JSON(http.StatusOK, gin.H{
			"message":     "Payment required.",
			"checkoutUrl": d.CheckoutURL,
		})
		return
	}
	if err != nil {
		code, msg := ledgerStatus(err)
		c.JSON(code, gin.H{"message": msg})
		return
	}

	msg := "Registered!"
	if reg.Status == models.StatusPending {
		msg = "Added to waitlist! You will be notified if a spot becomes available."
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg, "registration": reg})
}

// POST /events/:id/register/confirm
func (d *deps) confirmPayment(c *gin.Context) {
	sess := sessionFrom(c)
	eventID := c.Param("id")

	var req struct {
		Amount float64 `json:"amount"`
	}
	_ = c.ShouldBindJSON(&req)

	reg, err := d.Ledger.RegisterPaid(sess, eventID, req.Amount)
	if err != nil {
		code, msg := ledgerStatus(err)
		c.JSON(code, gin.H{"message": msg})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Payment recorded, registration approved!", "registration": reg})
}

// GET /events/:id/registrations
func (d *deps) getEventRegistrations(c *gin.Context) {
	sess := sessionFrom(c)

	agg, err := d.Ledger.Aggregate(c.Param("id"), sess.UserID)
	if err != nil {
		code, msg := ledgerStatus(err)
		c.JSON(code, gin.H{"message": msg})
		return
	}
	c.JSON(http.StatusOK, agg)
}

// DELETE /registrations/:id
func (d *deps) cancelRegistration(c *gin.Context) {
	sess := sessionFrom(c)

	if err := d.Ledger.Cancel(sess, c.Param("id")); err != nil {
		code, msg := ledgerStatus(err)
		c.JSON(code, gin.H{"message": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cancelled!"})
}

// PATCH /registrations/:id
func (d *deps) setRegistrationStatus(c *gin.Context) {
	sess := sessionFrom(c)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	reg, err := d.Ledger.SetStatus(sess, c.Param("id"), req.Status)
	if err != nil {
		code, msg := ledgerStatus(err)
		c.JSON(code, gin.H{"message": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "RSVP " + reg.Status + " successfully", "registration": reg})
}

// GET /registrations/pending
// Admin triage list, club scoped for club admins.
func (d *deps) getPendingRegistrations(c *gin.Context) {
	sess := sessionFrom(c)
	if !isEventAdmin(sess) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to review registrations."})
		return
	}

	pending, err := d.Registrations.ListByStatus(models.StatusPending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch registrations. Try again later."})
		return
	}

	type request struct {
		Registration models.Registration `json:"registration"`
		Event        models.Event        `json:"event"`
		FullName     string              `json:"fullName,omitempty"`
	}
	out := []request{}
	for _, reg := range pending {
		ev, err := d.Events.GetByID(reg.EventID)
		if err != nil {
			continue // event since deleted; skip the orphan
		}
		if !sess.CanManage(ev) {
			continue
		}
		item := request{Registration: reg, Event: ev}
		if u, err := d.Users.GetByID(reg.UserID); err == nil {
			item.FullName = u.FullName
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}

// GET /me/registrations
// The caller's registration history.
func (d *deps) getMyRegistrations(c *gin.Context) {
	sess := sessionFrom(c)

	regs, err := d.Registrations.ListByUser(sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch registrations. Try again later."})
		return
	}

	type entry struct {
		Registration models.Registration `json:"registration"`
		Event        *models.Event       `json:"event,omitempty"`
	}
	out := []entry{}
	for _, reg := range regs {
		e := entry{Registration: reg}
		if ev, err := d.Events.GetByID(reg.EventID); err == nil {
			e.Event = &ev
		}
		out = append(out, e)
	}
	c.JSON(http.StatusOK, out)
}
