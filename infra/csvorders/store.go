package csvorders

import (
	"github.com/mbaumer/orderlink/core/logger"
	"github.com/mbaumer/orderlink/core/orders"
)

// Store bundles the booking and workorder ledgers over one base directory.
type Store struct {
	*Bookings
	*Workorders
}

// NewStore creates both ledgers rooted at cfg.BasePath.
func NewStore(cfg Config, clk orders.Clock, log logger.Logger) *Store {
	cfg.SetDefaults()
	return &Store{
		Bookings:   NewBookings(cfg, clk, log),
		Workorders: NewWorkorders(cfg, clk, log),
	}
}

// Close implements the store plugin contract. The ledgers hold no open
// handles between operations.
func (s *Store) Close() error { return nil }
