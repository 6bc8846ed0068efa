package plugins

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/mbaumer/orderlink/core/logger"
	"github.com/mbaumer/orderlink/core/orders"
	"github.com/mbaumer/orderlink/infra/csvorders"
	"github.com/mbaumer/orderlink/infra/sqlorders"
)

func init() {
	RegisterStore("csv", func(name string, conf map[string]any, clk orders.Clock, log logger.Logger) (Store, error) {
		var cc csvorders.Config
		if err := mapstructure.Decode(conf, &cc); err != nil {
			return nil, err
		}
		return csvorders.NewStore(cc, clk, log), nil
	})
	RegisterStore("sqlite", func(name string, conf map[string]any, clk orders.Clock, log logger.Logger) (Store, error) {
		var sc sqlorders.Config
		if err := mapstructure.Decode(conf, &sc); err != nil {
			return nil, err
		}
		return sqlorders.New(sc, clk, log)
	})
}
