package app

import (
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/mr-tron/base58/base58"
	"golang.org/x/crypto/blake2b"

	"nearbite/go-backend/pkg/models"
)

// ErrEmptyCart is reported by callers that require a non-empty cart to
// confirm. Confirm itself treats an empty cart as a no-op.
var ErrEmptyCart = errors.New("cart is empty")

// OrderStatusPreparing is the single status an order carries; no further
// transitions are modeled.
const OrderStatusPreparing = "preparing"

// OrderMinter issues process-unique order identifiers. The preimage combines
// a monotonic counter with the wall clock, so IDs cannot collide within a
// process even if the clock steps backwards.
type OrderMinter struct {
	mu      sync.Mutex
	counter uint64
}

func NewOrderMinter() *OrderMinter {
	return &OrderMinter{}
}

func (m *OrderMinter) NextID(now time.Time) string {
	m.mu.Lock()
	m.counter++
	seq := m.counter
	m.mu.Unlock()

	var preimage [16]byte
	binary.BigEndian.PutUint64(preimage[:8], seq)
	binary.BigEndian.PutUint64(preimage[8:], uint64(now.UnixNano()))
	h := blake2b.Sum256(preimage[:])
	return "ord1" + base58.Encode(h[:12])
}

// Confirm materializes the session's cart into an order: total computed,
// lines deep-copied, order prepended (most recent first), cart emptied. A nil
// return means the cart was empty and nothing changed. The whole sequence
// runs under the caller's session lock, so no partial state is observable.
func Confirm(session *Session, minter *OrderMinter, now time.Time) *models.Order {
	if session.Cart.Empty() {
		return nil
	}
	total := session.Cart.Total()
	order := models.Order{
		ID:        minter.NextID(now),
		CreatedAt: now,
		Lines:     session.Cart.Lines(),
		TotalSen:  total,
		Total:     models.FormatRM(total),
		Status:    OrderStatusPreparing,
	}
	session.Orders = append([]models.Order{order}, session.Orders...)
	session.Cart.Clear()

	// The returned order gets its own lines so callers cannot reach into the
	// stored history.
	ret := order
	ret.Lines = append([]models.CartLine(nil), order.Lines...)
	return &ret
}
