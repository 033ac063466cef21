// Package nav is the guarded page transition table. It is pure: guards are
// evaluated against a State value supplied by the caller, so the table is
// testable without any session or UI.
package nav

import (
	"errors"
	"strings"
)

type Page string

const (
	PageLoggedOut    Page = "logged_out"
	PageMenu         Page = "menu"
	PageCart         Page = "cart"
	PageConfirmation Page = "confirmation"
	PageOrderSuccess Page = "order_success"
	PageOrders       Page = "orders"
)

const InitialPage = PageLoggedOut

func (p Page) Valid() bool {
	switch p {
	case PageLoggedOut, PageMenu, PageCart, PageConfirmation, PageOrderSuccess, PageOrders:
		return true
	default:
		return false
	}
}

// Protected reports whether the page requires a logged-in session.
func (p Page) Protected() bool {
	return p.Valid() && p != PageLoggedOut
}

var ErrInvalidPage = errors.New("invalid page")

func ParsePage(raw string) (Page, error) {
	p := Page(strings.TrimSpace(raw))
	if !p.Valid() {
		return "", ErrInvalidPage
	}
	return p, nil
}

type Trigger string

const (
	TriggerSubmitCredentials Trigger = "submit_credentials"
	TriggerOpenMenu          Trigger = "open_menu"
	TriggerOpenCart          Trigger = "open_cart"
	TriggerOpenOrders        Trigger = "open_orders"
	TriggerLogout            Trigger = "logout"
	TriggerBrowseMenu        Trigger = "browse_menu"
	TriggerCheckout          Trigger = "checkout"
	TriggerCancel            Trigger = "cancel"
	TriggerConfirmOrder      Trigger = "confirm_order"
	TriggerBackToHome        Trigger = "back_to_home"
)

func (t Trigger) Valid() bool {
	switch t {
	case TriggerSubmitCredentials, TriggerOpenMenu, TriggerOpenCart, TriggerOpenOrders,
		TriggerLogout, TriggerBrowseMenu, TriggerCheckout, TriggerCancel,
		TriggerConfirmOrder, TriggerBackToHome:
		return true
	default:
		return false
	}
}

var ErrInvalidTrigger = errors.New("invalid trigger")

func ParseTrigger(raw string) (Trigger, error) {
	t := Trigger(strings.TrimSpace(raw))
	if !t.Valid() {
		return "", ErrInvalidTrigger
	}
	return t, nil
}

// State carries the guard inputs for a transition.
type State struct {
	LoggedIn           bool
	CredentialsPresent bool
	CartEmpty          bool
}

var ErrTransitionNotAllowed = errors.New("transition not allowed")

// Next evaluates the transition table. A logged-out session is always pinned
// to PageLoggedOut: the only transition out is a credential submission whose
// guard holds, everything else redirects silently (no error).
func Next(current Page, trigger Trigger, st State) (Page, error) {
	if !st.LoggedIn {
		if current == PageLoggedOut && trigger == TriggerSubmitCredentials && st.CredentialsPresent {
			return PageMenu, nil
		}
		return PageLoggedOut, nil
	}

	// Post-login: the menu shortcut works from every page.
	if trigger == TriggerOpenMenu {
		return PageMenu, nil
	}

	switch current {
	case PageMenu:
		switch trigger {
		case TriggerOpenCart:
			return PageCart, nil
		case TriggerOpenOrders:
			return PageOrders, nil
		case TriggerLogout:
			return PageLoggedOut, nil
		}
	case PageCart:
		switch trigger {
		case TriggerBrowseMenu:
			if st.CartEmpty {
				return PageMenu, nil
			}
		case TriggerCheckout:
			if !st.CartEmpty {
				return PageConfirmation, nil
			}
		}
	case PageConfirmation:
		switch trigger {
		case TriggerCancel:
			return PageCart, nil
		case TriggerConfirmOrder:
			return PageOrderSuccess, nil
		}
	case PageOrderSuccess:
		if trigger == TriggerBackToHome {
			return PageMenu, nil
		}
	}
	return current, ErrTransitionNotAllowed
}

// Resolve applies the login guard to a direct page request: protected pages
// collapse to PageLoggedOut while logged out, and a logged-in session asking
// for the login page lands on the menu.
func Resolve(requested Page, loggedIn bool) Page {
	if !loggedIn {
		return PageLoggedOut
	}
	if requested == PageLoggedOut {
		return PageMenu
	}
	return requested
}
