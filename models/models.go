package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when no record matches.
// SQL and Mongo implementations translate their driver sentinels to it.
var ErrNotFound = errors.New("record not found")

// Registration statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Roles.
const (
	RoleAdmin     = "admin"
	RoleClubAdmin = "club_admin"
	RoleUser      = "user"
)

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"isAdmin"`
	ClubID   string `json:"clubId,omitempty"`
}

type Club struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AdminEmail  string    `json:"adminEmail"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Event struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Date        time.Time `json:"date" bson:"date"`
	Location    string    `json:"location" bson:"location"`
	Price       float64   `json:"price" bson:"price"`
	Capacity    int       `json:"capacity" bson:"capacity"`
	ClubID      string    `json:"clubId,omitempty" bson:"club_id,omitempty"`
	AdminID     int64     `json:"adminId" bson:"admin_id"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

type Announcement struct {
	ID        string    `json:"id" bson:"id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	AdminID   int64     `json:"adminId" bson:"admin_id"`
	ClubID    string    `json:"clubId,omitempty" bson:"club_id,omitempty"`
	Likes     int       `json:"likes" bson:"likes"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type Registration struct {
	ID            string    `json:"id"`
	EventID       string    `json:"eventId"`
	UserID        int64     `json:"userId"`
	Email         string    `json:"email"`
	Message       string    `json:"message,omitempty"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus,omitempty"`
	PaymentAmount float64   `json:"paymentAmount,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ===== Users =====
type UserRepository interface {
	Create(u *User) error
	ValidateCredentials(email, plain string) (User, error)
	GetByID(id int64) (User, error)
}

// ===== Clubs =====
type ClubRepository interface {
	GetAll() ([]Club, error)
	GetByID(id string) (Club, error)
	Create(c *Club) error
}

// ===== Events =====
type EventRepository interface {
	GetAll() ([]Event, error)
	GetByClub(clubID string) ([]Event, error)
	GetByID(id string) (Event, error)
	Create(e *Event) error
	Update(e *Event) error
	Delete(id string) error
}

// ===== Announcements =====
type AnnouncementRepository interface {
	GetAll() ([]Announcement, error)
	GetByClub(clubID string) ([]Announcement, error)
	Create(a *Announcement) error
	Delete(id string) error
	Like(id string) error
}

// ===== Registrations =====
// ListByEvent returns rows ordered by created_at ascending; waitlist
// position is derived from that order.
type RegistrationRepository interface {
	Create(r *Registration) error
	GetByID(id string) (Registration, error)
	ListByEvent(eventID string) ([]Registration, error)
	ListByUser(userID int64) ([]Registration, error)
	ListByStatus(status string) ([]Registration, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
}
