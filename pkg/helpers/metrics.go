package helpers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersPlaced counts order placement attempts by outcome
	// (created, invalid, not_found, failed).
	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurant_orders_placed_total",
		Help: "Order placement attempts by outcome.",
	}, []string{"outcome"})

	// AuthRejections counts requests rejected by the authentication gate.
	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurant_auth_rejections_total",
		Help: "Requests rejected by the authentication gate, by reason.",
	}, []string{"reason"})
)
