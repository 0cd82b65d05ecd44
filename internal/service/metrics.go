package service

import "github.com/prometheus/client_golang/prometheus"

var (
	cartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Total number of persisted cart mutations by action.",
		},
		[]string{"action"},
	)

	ordersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of orders placed by payment method.",
		},
		[]string{"payment_method"},
	)
)

func init() {
	prometheus.MustRegister(cartMutations, ordersPlaced)
}
