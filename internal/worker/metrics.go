package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nft_price_refreshes_total",
		Help: "Price refresh tasks by result.",
	}, []string{"result"})

	refreshAllEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nft_refresh_all_enqueued_total",
		Help: "Per-item refresh tasks enqueued by full catalog refreshes.",
	})

	accessesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nft_access_records_deleted_total",
		Help: "Access log rows removed by the cleanup task.",
	})
)
