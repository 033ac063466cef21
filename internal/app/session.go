package app

import (
	"errors"
	"strings"

	"nearbite/go-backend/internal/nav"
	"nearbite/go-backend/pkg/models"
)

var (
	ErrEmptyCredentials = errors.New("username and password are required")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrLoginThrottled   = errors.New("too many login attempts, try again later")
)

// Session is the per-user runtime state: identity, cart, order history and
// current page. It is created logged out and mutated only by its owner (the
// service serializes access).
type Session struct {
	Username string
	Cart     *Cart
	Orders   []models.Order
	Page     nav.Page
}

func NewSession() *Session {
	return &Session{
		Cart: NewCart(),
		Page: nav.InitialPage,
	}
}

func (s *Session) LoggedIn() bool {
	return s.Username != ""
}

// ValidateCredentials enforces the login guard. Credentials are otherwise
// accepted unchecked; there is no account store.
func ValidateCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return "", ErrEmptyCredentials
	}
	return username, nil
}

// BeginLogin starts a fresh login: identity set, cart empty, menu page.
// Order history from earlier logins in this process is deliberately kept.
func (s *Session) BeginLogin(username string) {
	s.Username = username
	s.Cart.Clear()
	s.Page = nav.PageMenu
}

// EndLogin resets the session on logout: identity and cart are dropped, the
// page returns to the login screen, orders survive.
func (s *Session) EndLogin() {
	s.Username = ""
	s.Cart.Clear()
	s.Page = nav.PageLoggedOut
}

// Snapshot deep-copies the session for the rendering layer.
func (s *Session) Snapshot() models.SessionSnapshot {
	return models.SessionSnapshot{
		LoggedIn: s.LoggedIn(),
		Username: s.Username,
		Page:     string(s.Page),
		Cart:     s.Cart.Snapshot(),
		Orders:   cloneOrders(s.Orders),
	}
}

func cloneOrders(in []models.Order) []models.Order {
	out := make([]models.Order, len(in))
	for i := range in {
		out[i] = in[i]
		out[i].Lines = append([]models.CartLine(nil), in[i].Lines...)
	}
	return out
}
