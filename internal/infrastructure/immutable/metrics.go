package immutable

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var orderBookErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nft_order_book_errors_total",
	Help: "Failed order book requests by reason.",
}, []string{"reason"})
