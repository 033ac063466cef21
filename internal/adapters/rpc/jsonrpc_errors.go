package rpc

import (
	"errors"

	"nearbite/go-backend/internal/app"
	"nearbite/go-backend/internal/catalog"
	"nearbite/go-backend/internal/nav"
)

var errInvalidParams = errors.New("invalid params")

func rpcInvalidParams() *rpcError {
	return &rpcError{Code: -32602, Message: "invalid params"}
}

// mapServiceError folds the sentinel errors of the service layer into the
// daemon's RPC code space. Anything unrecognized lands on the generic -32000.
func mapServiceError(err error) *rpcError {
	switch {
	case errors.Is(err, app.ErrNotLoggedIn):
		return &rpcError{Code: -32001, Message: err.Error()}
	case errors.Is(err, app.ErrEmptyCredentials),
		errors.Is(err, app.ErrInvalidQuantity),
		errors.Is(err, app.ErrEmptyCart),
		errors.Is(err, catalog.ErrUnknownRestaurant),
		errors.Is(err, catalog.ErrUnknownMenuItem),
		errors.Is(err, nav.ErrInvalidPage),
		errors.Is(err, nav.ErrInvalidTrigger):
		return &rpcError{Code: -32002, Message: err.Error()}
	case errors.Is(err, app.ErrLineIndexOutOfRange):
		return &rpcError{Code: -32003, Message: err.Error()}
	case errors.Is(err, nav.ErrTransitionNotAllowed):
		return &rpcError{Code: -32004, Message: err.Error()}
	case errors.Is(err, app.ErrLoginThrottled):
		return &rpcError{Code: -32005, Message: err.Error()}
	default:
		return &rpcError{Code: -32000, Message: err.Error()}
	}
}
