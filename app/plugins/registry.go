package plugins

import (
	"github.com/mbaumer/orderlink/core/logger"
	"github.com/mbaumer/orderlink/core/orders"
)

// Store is the full capability surface a backend must provide.
type Store interface {
	orders.BookingStore
	orders.WorkorderStore
	Close() error
}

// StoreFactory builds a store backend from a raw configuration map.
type StoreFactory func(name string, conf map[string]any, clk orders.Clock, log logger.Logger) (Store, error)

// Stores maps a backend name to its factory. Backends register themselves at
// process start; configuration then selects one by name, replacing the
// runtime type scanning the plugin host used to do.
var Stores = map[string]StoreFactory{}

// RegisterStore makes a backend available under the given name.
func RegisterStore(name string, f StoreFactory) { Stores[name] = f }
