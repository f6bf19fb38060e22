// Package ledger owns the lifecycle of event registrations: creation with
// capacity-aware status, owner cancellation, admin approval/rejection, and
// the derived per-event aggregate (counts, fullness, waitlist position).
//
// The ledger is a stateless layer over the event and registration
// repositories. It holds no shared mutable state; the capacity check and the
// subsequent insert are separate store round-trips (events and registrations
// live in different stores), so concurrent registrations racing for the last
// slot can overshoot capacity. The duplicate check is backstopped by a
// partial unique index on the registrations table.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campusevents/models"
)

// Session identifies the caller for authorization checks. It is always
// passed in explicitly; the ledger never reads an implicit current user.
type Session struct {
	UserID  int64
	Email   string
	Role    string
	ClubID  string
	IsAdmin bool
}

// CanManage reports whether the session may administrate the given event:
// global admins manage everything, club admins only their own club's events.
func (s Session) CanManage(ev models.Event) bool {
	if s.IsAdmin || s.Role == models.RoleAdmin {
		return true
	}
	return s.Role == models.RoleClubAdmin && s.ClubID != "" && s.ClubID == ev.ClubID
}

// Aggregate is the derived, read-only summary of an event's registrations.
// WaitlistPosition is 1-based and only set while the viewer's registration
// is pending.
type Aggregate struct {
	Total              int                  `json:"total"`
	ApprovedCount      int                  `json:"approvedCount"`
	PendingCount       int                  `json:"pendingCount"`
	IsFull             bool                 `json:"isFull"`
	ViewerRegistration *models.Registration `json:"viewerRegistration,omitempty"`
	WaitlistPosition   int                  `json:"waitlistPosition,omitempty"`
}

type Service struct {
	events models.EventRepository
	regs   models.RegistrationRepository
	now    func() time.Time
}

func New(events models.EventRepository, regs models.RegistrationRepository) *Service {
	return &Service{events: events, regs: regs, now: time.Now}
}

// Register handles the free-RSVP path: approved while capacity remains,
// pending (waitlisted) once the event is full. Paid events are not accepted
// here; they go through the checkout flow and RegisterPaid.
func (s *Service) Register(sess Session, eventID, message string) (models.Registration, error) {
	ev, err := s.getEvent(eventID)
	if err != nil {
		return models.Registration{}, err
	}
	if ev.Price > 0 {
		return models.Registration{}, ErrPaymentRequired
	}
	return s.create(sess, ev, message, false, 0)
}

// RegisterPaid records a registration after the external payment
// collaborator confirms a successful checkout. Status is forced to approved
// regardless of capacity.
func (s *Service) RegisterPaid(sess Session, eventID string, amount float64) (models.Registration, error) {
	ev, err := s.getEvent(eventID)
	if err != nil {
		return models.Registration{}, err
	}
	if amount <= 0 {
		amount = ev.Price
	}
	return s.create(sess, ev, "", true, amount)
}

func (s *Service) create(sess Session, ev models.Event, message string, paid bool, amount float64) (models.Registration, error) {
	existing, err := s.regs.ListByEvent(ev.ID)
	if err != nil {
		return models.Registration{}, storeErr(err)
	}

	approved := 0
	for _, reg := range existing {
		if reg.UserID == sess.UserID && reg.Status != models.StatusRejected {
			return models.Registration{}, ErrDuplicateRegistration
		}
		if reg.Status == models.StatusApproved {
			approved++
		}
	}

	status := models.StatusApproved
	if !paid && approved >= ev.Capacity {
		status = models.StatusPending
	}

	reg := models.Registration{
		ID:        uuid.NewString(),
		EventID:   ev.ID,
		UserID:    sess.UserID,
		Email:     sess.Email,
		Message:   message,
		Status:    status,
		CreatedAt: s.now(),
	}
	if paid {
		reg.PaymentStatus = "completed"
		reg.PaymentAmount = amount
	}

	if err := s.regs.Create(&reg); err != nil {
		return models.Registration{}, storeErr(err)
	}
	return reg, nil
}

// Cancel deletes the caller's own registration. Freeing an approved slot
// does not promote anyone from the waitlist; approval stays an explicit
// admin action.
func (s *Service) Cancel(sess Session, registrationID string) error {
	reg, err := s.getRegistration(registrationID)
	if err != nil {
		return err
	}
	if reg.UserID != sess.UserID {
		return ErrForbidden
	}
	if reg.Status == models.StatusRejected {
		return ErrInvalidTransition
	}
	if err := s.regs.Delete(registrationID); err != nil {
		return storeErr(err)
	}
	return nil
}

// SetStatus moves a registration to approved or rejected. Only admins
// authorized for the event's club may call it. Approving into a full event
// is allowed: admins can deliberately over-book. Rejected is terminal.
func (s *Service) SetStatus(sess Session, registrationID, newStatus string) (models.Registration, error) {
	if newStatus != models.StatusApproved && newStatus != models.StatusRejected {
		return models.Registration{}, ErrInvalidTransition
	}

	reg, err := s.getRegistration(registrationID)
	if err != nil {
		return models.Registration{}, err
	}
	ev, err := s.getEvent(reg.EventID)
	if err != nil {
		return models.Registration{}, err
	}
	if !sess.CanManage(ev) {
		return models.Registration{}, ErrForbidden
	}
	if reg.Status == newStatus || reg.Status == models.StatusRejected {
		return models.Registration{}, ErrInvalidTransition
	}

	if err := s.regs.UpdateStatus(registrationID, newStatus); err != nil {
		return models.Registration{}, storeErr(err)
	}
	reg.Status = newStatus
	return reg, nil
}

// Aggregate derives the event's registration summary. Read-only and safe
// to call concurrently; waitlist position is the viewer's 1-based rank among
// pending registrations in creation order.
func (s *Service) Aggregate(eventID string, viewerID int64) (Aggregate, error) {
	ev, err := s.getEvent(eventID)
	if err != nil {
		return Aggregate{}, err
	}

	regs, err := s.regs.ListByEvent(eventID)
	if err != nil {
		return Aggregate{}, storeErr(err)
	}

	agg := Aggregate{Total: len(regs)}
	for i := range regs {
		reg := regs[i]
		switch reg.Status {
		case models.StatusApproved:
			agg.ApprovedCount++
		case models.StatusPending:
			agg.PendingCount++
			if reg.UserID == viewerID {
				agg.WaitlistPosition = agg.PendingCount
			}
		}
		if reg.UserID == viewerID {
			agg.ViewerRegistration = &regs[i]
		}
	}

	if agg.ViewerRegistration != nil && agg.ViewerRegistration.Status != models.StatusPending {
		agg.WaitlistPosition = 0
	}
	agg.IsFull = agg.ApprovedCount >= ev.Capacity
	return agg, nil
}

func (s *Service) getEvent(id string) (models.Event, error) {
	ev, err := s.events.GetByID(id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Event{}, ErrNotFound
	}
	if err != nil {
		return models.Event{}, storeErr(err)
	}
	return ev, nil
}

func (s *Service) getRegistration(id string) (models.Registration, error) {
	reg, err := s.regs.GetByID(id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Registration{}, ErrNotFound
	}
	if err != nil {
		return models.Registration{}, storeErr(err)
	}
	return reg, nil
}

func storeErr(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
