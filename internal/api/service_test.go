package api

import (
	"errors"
	"strings"
	"testing"
	"time"

	"nearbite/go-backend/internal/app"
	"nearbite/go-backend/internal/catalog"
	"nearbite/go-backend/internal/nav"
	"nearbite/go-backend/internal/platform/ratelimiter"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewServiceWithOptions(Options{
		LoginLimiter: ratelimiter.New(1000, 1000, time.Minute),
		Now: func() time.Time {
			return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
		},
	})
}

func login(t *testing.T, s *Service) {
	t.Helper()
	snap, err := s.Login("alice", "x")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !snap.LoggedIn || snap.Page != "menu" {
		t.Fatalf("unexpected post-login snapshot: %+v", snap)
	}
}

func TestLoginValidation(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Login("", "secret"); !errors.Is(err, app.ErrEmptyCredentials) {
		t.Fatalf("expected ErrEmptyCredentials, got %v", err)
	}
	if _, err := s.Login("bob", "   "); !errors.Is(err, app.ErrEmptyCredentials) {
		t.Fatalf("expected ErrEmptyCredentials for blank password, got %v", err)
	}
	if s.Snapshot().LoggedIn {
		t.Fatal("rejected login must not log the session in")
	}

	snap, err := s.Login("  bob  ", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if snap.Username != "bob" {
		t.Fatalf("username not trimmed: %q", snap.Username)
	}
}

func TestLoginThrottled(t *testing.T) {
	s := NewServiceWithOptions(Options{
		LoginLimiter: ratelimiter.New(0.001, 2, time.Minute),
		Now: func() time.Time {
			return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := s.Login("alice", "x"); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	if _, err := s.Login("alice", "x"); !errors.Is(err, app.ErrLoginThrottled) {
		t.Fatalf("expected ErrLoginThrottled, got %v", err)
	}
	// A different username has its own bucket.
	if _, err := s.Login("carol", "x"); err != nil {
		t.Fatalf("other username throttled: %v", err)
	}
}

func TestAddToCartMergesLines(t *testing.T) {
	s := newTestService(t)
	login(t, s)

	if _, err := s.AddToCart("m1", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	snap, err := s.AddToCart("m1", 1)
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if len(snap.Lines) != 1 {
		t.Fatalf("expected merged single line, got %d", len(snap.Lines))
	}
	if snap.Lines[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", snap.Lines[0].Quantity)
	}
	if snap.TotalSen != 3*1550 {
		t.Fatalf("total = %d, want %d", snap.TotalSen, 3*1550)
	}
	if snap.Total != "RM 46.50" {
		t.Fatalf("formatted total = %q", snap.Total)
	}

	snap, err = s.AddToCart("m4", 1)
	if err != nil {
		t.Fatalf("add other restaurant: %v", err)
	}
	if len(snap.Lines) != 2 {
		t.Fatalf("expected 2 lines after distinct item, got %d", len(snap.Lines))
	}
	if snap.Lines[1].RestaurantName != "Kelantan Fusion Kitchen" {
		t.Fatalf("restaurant name = %q", snap.Lines[1].RestaurantName)
	}
}

func TestAddToCartGuards(t *testing.T) {
	s := newTestService(t)

	if _, err := s.AddToCart("m1", 1); !errors.Is(err, app.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}

	login(t, s)
	if _, err := s.AddToCart("nope", 1); !errors.Is(err, catalog.ErrUnknownMenuItem) {
		t.Fatalf("expected ErrUnknownMenuItem, got %v", err)
	}
	if _, err := s.AddToCart("m1", 0); !errors.Is(err, app.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	snap, err := s.GetCart()
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(snap.Lines) != 0 {
		t.Fatalf("rejected adds must leave the cart empty, got %d lines", len(snap.Lines))
	}
}

func TestRemoveCartLine(t *testing.T) {
	s := newTestService(t)
	login(t, s)
	if _, err := s.AddToCart("m1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddToCart("m2", 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := s.RemoveCartLine(5); !errors.Is(err, app.ErrLineIndexOutOfRange) {
		t.Fatalf("expected ErrLineIndexOutOfRange, got %v", err)
	}
	before, _ := s.GetCart()
	if len(before.Lines) != 2 || before.TotalSen != 1550+2*1200 {
		t.Fatalf("failed remove must not change the cart: %+v", before)
	}

	snap, err := s.RemoveCartLine(0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(snap.Lines) != 1 || snap.Lines[0].ItemID != "m2" {
		t.Fatalf("unexpected lines after remove: %+v", snap.Lines)
	}
	if snap.TotalSen != before.TotalSen-1550 {
		t.Fatalf("total = %d, want %d", snap.TotalSen, before.TotalSen-1550)
	}
}

func TestConfirmOrderFlow(t *testing.T) {
	s := newTestService(t)
	login(t, s)

	if _, err := s.ConfirmOrder(); !errors.Is(err, app.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if _, err := s.AddToCart("m3", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	order, err := s.ConfirmOrder()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if order.Total != "RM 20.00" || order.TotalSen != 2000 {
		t.Fatalf("order total = %q (%d sen)", order.Total, order.TotalSen)
	}
	if !strings.HasPrefix(order.ID, "ord1") {
		t.Fatalf("order id = %q", order.ID)
	}
	if order.Status != app.OrderStatusPreparing {
		t.Fatalf("status = %q", order.Status)
	}

	cart, err := s.GetCart()
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(cart.Lines) != 0 || cart.TotalSen != 0 {
		t.Fatalf("cart not emptied after confirm: %+v", cart)
	}
	if page := s.Snapshot().Page; page != "order_success" {
		t.Fatalf("page after confirm = %q", page)
	}

	// Second order lands first in history.
	if _, err := s.AddToCart("m1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.ConfirmOrder(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	orders, err := s.GetOrders()
	if err != nil {
		t.Fatalf("get orders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(orders))
	}
	if orders[0].TotalSen != 1550 || orders[1].TotalSen != 2000 {
		t.Fatalf("history not most recent first: %d, %d", orders[0].TotalSen, orders[1].TotalSen)
	}
	if orders[0].ID == orders[1].ID {
		t.Fatalf("duplicate order id %q", orders[0].ID)
	}
}

func TestLogoutClearsCartKeepsOrders(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Logout(); !errors.Is(err, app.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}

	login(t, s)
	if _, err := s.AddToCart("m5", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.ConfirmOrder(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := s.AddToCart("m2", 1); err != nil {
		t.Fatalf("add after confirm: %v", err)
	}

	snap, err := s.Logout()
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if snap.LoggedIn || snap.Page != "logged_out" {
		t.Fatalf("unexpected post-logout snapshot: %+v", snap)
	}
	if len(snap.Cart.Lines) != 0 {
		t.Fatal("logout must clear the cart")
	}
	if len(snap.Orders) != 1 {
		t.Fatalf("orders after logout = %d, want 1", len(snap.Orders))
	}

	// History survives the next login, the cart does not.
	login(t, s)
	orders, err := s.GetOrders()
	if err != nil {
		t.Fatalf("get orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("orders after relogin = %d, want 1", len(orders))
	}
	cart, _ := s.GetCart()
	if len(cart.Lines) != 0 {
		t.Fatal("fresh login must start with an empty cart")
	}
}

func TestNavigateGuards(t *testing.T) {
	s := newTestService(t)

	snap, err := s.Navigate("orders")
	if err != nil {
		t.Fatalf("navigate while logged out must redirect, not fail: %v", err)
	}
	if snap.Page != "logged_out" {
		t.Fatalf("page = %q, want logged_out", snap.Page)
	}

	if _, err := s.Navigate("attic"); !errors.Is(err, nav.ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}

	login(t, s)
	snap, err = s.Navigate("orders")
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if snap.Page != "orders" {
		t.Fatalf("page = %q, want orders", snap.Page)
	}
	snap, _ = s.Navigate("logged_out")
	if snap.Page != "menu" {
		t.Fatalf("logged-in request for the login page should land on menu, got %q", snap.Page)
	}
}

func TestApplyDrivesCheckout(t *testing.T) {
	s := newTestService(t)
	login(t, s)

	if _, err := s.Apply("submit_credentials"); !errors.Is(err, nav.ErrTransitionNotAllowed) {
		t.Fatalf("expected ErrTransitionNotAllowed, got %v", err)
	}
	if _, err := s.Apply("teleport"); !errors.Is(err, nav.ErrInvalidTrigger) {
		t.Fatalf("expected ErrInvalidTrigger, got %v", err)
	}

	snap, err := s.Apply("open_cart")
	if err != nil {
		t.Fatalf("open_cart: %v", err)
	}
	if snap.Page != "cart" {
		t.Fatalf("page = %q, want cart", snap.Page)
	}

	// Checkout is guarded on a non-empty cart.
	if _, err := s.Apply("checkout"); !errors.Is(err, nav.ErrTransitionNotAllowed) {
		t.Fatalf("empty-cart checkout: expected ErrTransitionNotAllowed, got %v", err)
	}
	if _, err := s.AddToCart("m2", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Apply("browse_menu"); !errors.Is(err, nav.ErrTransitionNotAllowed) {
		t.Fatalf("browse_menu with items: expected ErrTransitionNotAllowed, got %v", err)
	}

	snap, err = s.Apply("checkout")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if snap.Page != "confirmation" {
		t.Fatalf("page = %q, want confirmation", snap.Page)
	}

	snap, err = s.Apply("cancel")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if snap.Page != "cart" {
		t.Fatalf("page = %q, want cart", snap.Page)
	}
	if len(snap.Cart.Lines) != 1 {
		t.Fatal("cancel must keep the cart")
	}

	if _, err := s.Apply("checkout"); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	snap, err = s.Apply("confirm_order")
	if err != nil {
		t.Fatalf("confirm_order: %v", err)
	}
	if snap.Page != "order_success" {
		t.Fatalf("page = %q, want order_success", snap.Page)
	}
	if len(snap.Orders) != 1 || len(snap.Cart.Lines) != 0 {
		t.Fatalf("confirm via trigger did not move the cart into history: %+v", snap)
	}

	snap, err = s.Apply("back_to_home")
	if err != nil {
		t.Fatalf("back_to_home: %v", err)
	}
	if snap.Page != "menu" {
		t.Fatalf("page = %q, want menu", snap.Page)
	}

	snap, err = s.Apply("logout")
	if err != nil {
		t.Fatalf("logout trigger: %v", err)
	}
	if snap.LoggedIn || snap.Page != "logged_out" {
		t.Fatalf("unexpected snapshot after logout trigger: %+v", snap)
	}
}

func TestCatalogReads(t *testing.T) {
	s := newTestService(t)

	restaurants := s.ListRestaurants()
	if len(restaurants) != 2 {
		t.Fatalf("restaurants = %d, want 2", len(restaurants))
	}
	res, err := s.GetRestaurant("r1")
	if err != nil {
		t.Fatalf("get restaurant: %v", err)
	}
	if res.Name != "Dapur Sihat Machang" || len(res.Menu) != 3 {
		t.Fatalf("unexpected restaurant: %+v", res)
	}
	if _, err := s.GetRestaurant("r9"); !errors.Is(err, catalog.ErrUnknownRestaurant) {
		t.Fatalf("expected ErrUnknownRestaurant, got %v", err)
	}

	hits := s.SearchRestaurants("fusion")
	if len(hits) != 2 {
		t.Fatalf("search fusion = %d hits, want 2", len(hits))
	}
}

func TestNotificationsReplay(t *testing.T) {
	s := newTestService(t)
	login(t, s)
	if _, err := s.AddToCart("m1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.ConfirmOrder(); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	backlog, _, cancel := s.SubscribeNotifications(0)
	defer cancel()

	want := []string{
		app.NotifySessionChanged,
		app.NotifyCartChanged,
		app.NotifyCartChanged,
		app.NotifyOrderConfirmed,
	}
	if len(backlog) != len(want) {
		t.Fatalf("backlog = %d events, want %d", len(backlog), len(want))
	}
	for i, ev := range backlog {
		if ev.Method != want[i] {
			t.Fatalf("event %d = %q, want %q", i, ev.Method, want[i])
		}
		if ev.Seq != int64(i+1) {
			t.Fatalf("event %d seq = %d", i, ev.Seq)
		}
	}
}

func TestMetricsRecording(t *testing.T) {
	s := newTestService(t)
	login(t, s)
	if _, err := s.AddToCart("m1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.ConfirmOrder(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := s.ConfirmOrder(); err == nil {
		t.Fatal("expected empty-cart error")
	}

	m := s.GetMetrics()
	if m.Logins != 1 || m.CartAdds != 1 || m.OrdersConfirmed != 1 {
		t.Fatalf("unexpected counters: %+v", m)
	}
	if m.RevenueSen != 1550 {
		t.Fatalf("revenue = %d, want 1550", m.RevenueSen)
	}
	if m.ErrorCounters[app.ErrorCategoryValidation] != 1 {
		t.Fatalf("validation errors = %d, want 1", m.ErrorCounters[app.ErrorCategoryValidation])
	}
}
