package api

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"nearbite/go-backend/internal/app"
	"nearbite/go-backend/internal/catalog"
	"nearbite/go-backend/internal/nav"
	"nearbite/go-backend/internal/platform/ratelimiter"
	"nearbite/go-backend/pkg/models"
)

// Service owns the single logical session and serializes every mutation
// behind one mutex: each user action is handled to completion before the next
// is considered. The catalog is immutable and safe to read without the lock.
type Service struct {
	catalog      *catalog.Store
	logger       *slog.Logger
	metrics      *app.MetricsState
	notifier     *app.NotificationHub
	loginLimiter *ratelimiter.MapLimiter
	now          func() time.Time

	mu      sync.Mutex
	session *app.Session
	minter  *app.OrderMinter
}

type Options struct {
	Catalog      *catalog.Store
	Logger       *slog.Logger
	LoginLimiter *ratelimiter.MapLimiter
	Now          func() time.Time
}

func NewService() *Service {
	return NewServiceWithOptions(Options{})
}

func NewServiceWithOptions(opts Options) *Service {
	if opts.Catalog == nil {
		opts.Catalog = catalog.NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = app.DefaultLogger()
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.LoginLimiter == nil {
		opts.LoginLimiter = ratelimiter.New(1, 5, 10*time.Minute)
	}
	app.RegisterMetrics(prometheus.DefaultRegisterer)
	return &Service{
		catalog:      opts.Catalog,
		logger:       opts.Logger,
		metrics:      app.NewMetricsState(),
		notifier:     app.NewNotificationHub(2048),
		loginLimiter: opts.LoginLimiter,
		now:          opts.Now,
		session:      app.NewSession(),
		minter:       app.NewOrderMinter(),
	}
}

var _ app.CoreAPI = (*Service)(nil)

func (s *Service) Login(username, password string) (models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(username))
	if !s.loginLimiter.Allow(key, s.now()) {
		s.metrics.RecordError(app.ErrorCategoryThrottle)
		s.logger.Warn("login throttled", "username", key)
		return s.session.Snapshot(), app.ErrLoginThrottled
	}
	name, err := app.ValidateCredentials(username, password)
	if err != nil {
		s.metrics.RecordError(app.ErrorCategoryValidation)
		s.logger.Warn("login rejected", "reason", "empty credentials")
		return s.session.Snapshot(), err
	}

	s.session.BeginLogin(name)
	s.metrics.RecordLogin()
	s.logger.Info("login", "username", name)

	snap := s.session.Snapshot()
	s.notifier.Publish(app.NotifySessionChanged, snap)
	return snap, nil
}

func (s *Service) Logout() (models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logoutLocked()
}

func (s *Service) logoutLocked() (models.SessionSnapshot, error) {
	if !s.session.LoggedIn() {
		return s.session.Snapshot(), app.ErrNotLoggedIn
	}
	username := s.session.Username
	s.session.EndLogin()
	s.metrics.RecordLogout()
	s.logger.Info("logout", "username", username)

	snap := s.session.Snapshot()
	s.notifier.Publish(app.NotifySessionChanged, snap)
	return snap, nil
}

func (s *Service) ListRestaurants() []models.Restaurant {
	return s.catalog.Restaurants()
}

func (s *Service) GetRestaurant(restaurantID string) (models.Restaurant, error) {
	res, err := s.catalog.Restaurant(restaurantID)
	if err != nil {
		s.metrics.RecordError(app.ErrorCategoryValidation)
		return models.Restaurant{}, err
	}
	return res, nil
}

func (s *Service) SearchRestaurants(query string) []models.Restaurant {
	return s.catalog.Search(query)
}

func (s *Service) AddToCart(itemID string, quantity int) (models.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.LoggedIn() {
		return models.CartSnapshot{}, app.ErrNotLoggedIn
	}
	item, restaurantName, err := s.catalog.Item(itemID)
	if err != nil {
		s.metrics.RecordError(app.ErrorCategoryValidation)
		return s.session.Cart.Snapshot(), err
	}
	if err := s.session.Cart.AddItem(item, restaurantName, quantity, s.now()); err != nil {
		s.metrics.RecordError(app.ErrorCategoryValidation)
		return s.session.Cart.Snapshot(), err
	}
	s.metrics.RecordCartAdd()
	s.logger.Info("cart add", "item_id", item.ID, "quantity", quantity)

	snap := s.session.Cart.Snapshot()
	s.notifier.Publish(app.NotifyCartChanged, snap)
	return snap, nil
}

func (s *Service) RemoveCartLine(index int) (models.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.LoggedIn() {
		return models.CartSnapshot{}, app.ErrNotLoggedIn
	}
	removed, err := s.session.Cart.RemoveLine(index)
	if err != nil {
		s.metrics.RecordError(app.ErrorCategoryIndex)
		s.logger.Error("cart remove failed", "index", index, "lines", s.session.Cart.Len())
		return s.session.Cart.Snapshot(), err
	}
	s.metrics.RecordCartRemoval()
	s.logger.Info("cart remove", "item_id", removed.ItemID, "index", index)

	snap := s.session.Cart.Snapshot()
	s.notifier.Publish(app.NotifyCartChanged, snap)
	return snap, nil
}

func (s *Service) GetCart() (models.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.LoggedIn() {
		return models.CartSnapshot{}, app.ErrNotLoggedIn
	}
	return s.session.Cart.Snapshot(), nil
}

func (s *Service) ConfirmOrder() (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmLocked()
}

func (s *Service) confirmLocked() (models.Order, error) {
	if !s.session.LoggedIn() {
		return models.Order{}, app.ErrNotLoggedIn
	}
	order := app.Confirm(s.session, s.minter, s.now())
	if order == nil {
		s.metrics.RecordError(app.ErrorCategoryValidation)
		return models.Order{}, app.ErrEmptyCart
	}
	s.session.Page = nav.PageOrderSuccess
	s.metrics.RecordOrderConfirmed(order.TotalSen)
	s.logger.Info("order confirmed", "order_id", order.ID, "total_sen", order.TotalSen, "lines", len(order.Lines))

	s.notifier.Publish(app.NotifyCartChanged, s.session.Cart.Snapshot())
	s.notifier.Publish(app.NotifyOrderConfirmed, *order)
	return *order, nil
}

func (s *Service) GetOrders() ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.LoggedIn() {
		return nil, app.ErrNotLoggedIn
	}
	return s.session.Snapshot().Orders, nil
}

// Navigate handles a direct page request. The login guard is applied
// silently: a protected page while logged out lands on the login page with no
// error, per the transition rules.
func (s *Service) Navigate(page string) (models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requested, err := nav.ParsePage(page)
	if err != nil {
		s.metrics.RecordError(app.ErrorCategoryValidation)
		return s.session.Snapshot(), err
	}
	resolved := nav.Resolve(requested, s.session.LoggedIn())
	if resolved != requested {
		s.logger.Info("navigation redirected", "requested", string(requested), "resolved", string(resolved))
	}
	s.setPageLocked(resolved)
	return s.session.Snapshot(), nil
}

// Apply drives the transition table with a named trigger. Credential
// submission goes through Login instead; logout and order confirmation
// delegate to their engines so the page and the state change stay atomic.
func (s *Service) Apply(trigger string) (models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := nav.ParseTrigger(trigger)
	if err != nil {
		s.metrics.RecordError(app.ErrorCategoryValidation)
		return s.session.Snapshot(), err
	}
	switch t {
	case nav.TriggerSubmitCredentials:
		return s.session.Snapshot(), nav.ErrTransitionNotAllowed
	case nav.TriggerLogout:
		if next, err := nav.Next(s.session.Page, t, s.navStateLocked()); err != nil || next != nav.PageLoggedOut {
			return s.session.Snapshot(), nav.ErrTransitionNotAllowed
		}
		return s.logoutLocked()
	case nav.TriggerConfirmOrder:
		if _, err := nav.Next(s.session.Page, t, s.navStateLocked()); err != nil {
			return s.session.Snapshot(), err
		}
		if _, err := s.confirmLocked(); err != nil {
			return s.session.Snapshot(), err
		}
		return s.session.Snapshot(), nil
	}

	next, err := nav.Next(s.session.Page, t, s.navStateLocked())
	if err != nil {
		return s.session.Snapshot(), err
	}
	s.setPageLocked(next)
	return s.session.Snapshot(), nil
}

func (s *Service) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Snapshot()
}

func (s *Service) GetMetrics() models.MetricsSnapshot {
	return s.metrics.Snapshot()
}

func (s *Service) SubscribeNotifications(fromSeq int64) ([]app.NotificationEvent, <-chan app.NotificationEvent, func()) {
	return s.notifier.Subscribe(fromSeq)
}

func (s *Service) navStateLocked() nav.State {
	return nav.State{
		LoggedIn:  s.session.LoggedIn(),
		CartEmpty: s.session.Cart.Empty(),
	}
}

func (s *Service) setPageLocked(page nav.Page) {
	if s.session.Page == page {
		return
	}
	s.session.Page = page
	s.notifier.Publish(app.NotifyPageChanged, map[string]string{"page": string(page)})
}
