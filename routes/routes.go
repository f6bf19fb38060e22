package routes

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"campusevents/ledger"
	"campusevents/middlewares"
	"campusevents/models"
	"campusevents/utils"
)

// Deps is the dependency container handed in by main.
type Deps struct {
	Users         models.UserRepository
	Clubs         models.ClubRepository
	Events        models.EventRepository
	Announcements models.AnnouncementRepository
	Registrations models.RegistrationRepository
	Ledger        *ledger.Service
	RDB           *redis.Client
	Inv           *utils.CacheInvalidator
	CheckoutURL   string
}

type deps struct{ Deps }

func RegisterRoutes(server *gin.Engine, in Deps) {
	d := &deps{in}

	// Global per-IP limiter (20 rps / 40 burst).
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// Stricter limiter for credential endpoints.
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     0.5,
		Burst:   2,
		IdleTTL: 10 * time.Minute,
	})
	server.POST("/signup",
		authLimiter.Middleware(func(c *gin.Context) string { return "signup:" + c.ClientIP() }),
		d.signup,
	)
	server.POST("/login",
		authLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		d.login,
	)

	// Public reads: IP limiter + response cache only.
	server.GET("/events", d.getEvents)
	server.GET("/events/:id", d.getEvent)
	server.GET("/announcements", d.getAnnouncements)
	server.GET("/clubs", d.getClubs)
	server.GET("/clubs/:id", d.getClub)

	// Authenticated group: per-user limiter + daily quota.
	auth := server.Group("/")
	auth.Use(middlewares.Authenticate)

	userLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
	})
	auth.Use(userLimiter.Middleware(func(c *gin.Context) string {
		return "u:" + strconv.FormatInt(c.GetInt64("userId"), 10)
	}))

	auth.Use(middlewares.Quota(d.RDB, middlewares.QuotaRule{
		Limit:  2000,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			uid := c.GetInt64("userId")
			if uid == 0 {
				return ""
			}
			return fmt.Sprintf("quota:user:%d:day", uid)
		},
	}))

	// Events (admin / club admin).
	auth.POST("/events", d.createEvent)
	auth.PUT("/events/:id", d.updateEvent)
	auth.DELETE("/events/:id", d.deleteEvent)

	// Announcements.
	auth.POST("/announcements", d.createAnnouncement)
	auth.DELETE("/announcements/:id", d.deleteAnnouncement)
	auth.POST("/announcements/:id/like", d.likeAnnouncement)

	// Clubs.
	auth.POST("/clubs", d.createClub)

	// Registrations.
	auth.POST("/events/:id/register", d.registerForEvent)
	auth.POST("/events/:id/register/confirm", d.confirmPayment)
	auth.GET("/events/:id/registrations", d.getEventRegistrations)
	auth.DELETE("/registrations/:id", d.cancelRegistration)
	auth.PATCH("/registrations/:id", d.setRegistrationStatus)
	auth.GET("/registrations/pending", d.getPendingRegistrations)
	auth.GET("/me/registrations", d.getMyRegistrations)
}

// sessionFrom rebuilds the ledger session from the claims the auth
// middleware stored in the context.
func sessionFrom(c *gin.Context) ledger.Session {
	return ledger.Session{
		UserID:  c.GetInt64("userId"),
		Email:   c.GetString("email"),
		Role:    c.GetString("role"),
		ClubID:  c.GetString("clubId"),
		IsAdmin: c.GetBool("isAdmin"),
	}
}

func isEventAdmin(sess ledger.Session) bool {
	return sess.IsAdmin || sess.Role == models.RoleAdmin || sess.Role == models.RoleClubAdmin
}
