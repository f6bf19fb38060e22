package routes_test

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"campusevents/ledger"
	"campusevents/models"
	"campusevents/routes"
	"campusevents/utils"
)

/* ---------- fakes ---------- */

type fakeUsers struct{ byEmail map[string]models.User }

func (m *fakeUsers) Create(u *models.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return errors.New("dup")
	}
	u.ID = int64(len(m.byEmail) + 1)
	m.byEmail[u.Email] = *u
	return nil
}

func (m *fakeUsers) ValidateCredentials(email, plain string) (models.User, error) {
	u, ok := m.byEmail[email]
	if !ok || u.Password != plain {
		return models.User{}, errors.New("bad credentials")
	}
	return u, nil
}

func (m *fakeUsers) GetByID(id int64) (models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

type fakeClubs struct{ items map[string]models.Club }

func (m *fakeClubs) GetAll() ([]models.Club, error) {
	out := make([]models.Club, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *fakeClubs) GetByID(id string) (models.Club, error) {
	c, ok := m.items[id]
	if !ok {
		return models.Club{}, models.ErrNotFound
	}
	return c, nil
}

func (m *fakeClubs) Create(c *models.Club) error { m.items[c.ID] = *c; return nil }

type fakeEvents struct{ items map[string]models.Event }

func (m *fakeEvents) GetAll() ([]models.Event, error) {
	out := make([]models.Event, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, e)
	}
	return out, nil
}

func (m *fakeEvents) GetByClub(clubID string) ([]models.Event, error) {
	var out []models.Event
	for _, e := range m.items {
		if e.ClubID == clubID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *fakeEvents) GetByID(id string) (models.Event, error) {
	e, ok := m.items[id]
	if !ok {
		return models.Event{}, models.ErrNotFound
	}
	return e, nil
}

func (m *fakeEvents) Create(e *models.Event) error { m.items[e.ID] = *e; return nil }
func (m *fakeEvents) Update(e *models.Event) error { m.items[e.ID] = *e; return nil }
func (m *fakeEvents) Delete(id string) error       { delete(m.items, id); return nil }

type fakeAnns struct{ items map[string]models.Announcement }

func (m *fakeAnns) GetAll() ([]models.Announcement, error) {
	out := make([]models.Announcement, 0, len(m.items))
	for _, a := range m.items {
		out = append(out, a)
	}
	return out, nil
}

func (m *fakeAnns) GetByClub(clubID string) ([]models.Announcement, error) {
	var out []models.Announcement
	for _, a := range m.items {
		if a.ClubID == clubID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *fakeAnns) Create(a *models.Announcement) error { m.items[a.ID] = *a; return nil }
func (m *fakeAnns) Delete(id string) error              { delete(m.items, id); return nil }

func (m *fakeAnns) Like(id string) error {
	a, ok := m.items[id]
	if !ok {
		return models.ErrNotFound
	}
	a.Likes++
	m.items[id] = a
	return nil
}

type fakeRegs struct{ items []models.Registration }

func (m *fakeRegs) Create(r *models.Registration) error {
	m.items = append(m.items, *r)
	return nil
}

func (m *fakeRegs) GetByID(id string) (models.Registration, error) {
	for _, r := range m.items {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Registration{}, models.ErrNotFound
}

func (m *fakeRegs) ListByEvent(eventID string) ([]models.Registration, error) {
	var out []models.Registration
	for _, r := range m.items {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *fakeRegs) ListByUser(userID int64) ([]models.Registration, error) {
	var out []models.Registration
	for _, r := range m.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *fakeRegs) ListByStatus(status string) ([]models.Registration, error) {
	var out []models.Registration
	for _, r := range m.items {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *fakeRegs) UpdateStatus(id, status string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Status = status
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *fakeRegs) Delete(id string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

/* ---------- server setup ---------- */

type testDeps struct {
	s      *gin.Engine
	users  *fakeUsers
	clubs  *fakeClubs
	events *fakeEvents
	anns   *fakeAnns
	regs   *fakeRegs
}

func setupServer(t *testing.T) testDeps {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	t.Cleanup(func() { mr.Close() })
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	d := testDeps{
		s:      gin.New(),
		users:  &fakeUsers{byEmail: map[string]models.User{}},
		clubs:  &fakeClubs{items: map[string]models.Club{}},
		events: &fakeEvents{items: map[string]models.Event{}},
		anns:   &fakeAnns{items: map[string]models.Announcement{}},
		regs:   &fakeRegs{},
	}

	routes.RegisterRoutes(d.s, routes.Deps{
		Users:         d.users,
		Clubs:         d.clubs,
		Events:        d.events,
		Announcements: d.anns,
		Registrations: d.regs,
		Ledger:        ledger.New(d.events, d.regs),
		RDB:           rdb,
		Inv:           utils.NewCacheInvalidator(rdb),
		CheckoutURL:   "https://checkout.example/test",
	})
	return d
}

func doReq(s *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	s.ServeHTTP(w, req)
	return w
}

func authToken(t *testing.T, u models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(u)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func seedEvent(d testDeps, id string, capacity int, price float64, clubID string) models.Event {
	ev := models.Event{
		ID:       id,
		Title:    "Event " + id,
		Capacity: capacity,
		Price:    price,
		ClubID:   clubID,
		Date:     time.Now().Add(48 * time.Hour),
	}
	d.events.items[id] = ev
	return ev
}
