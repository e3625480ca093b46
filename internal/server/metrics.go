package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var upsertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nft_item_upserts_total",
	Help: "Item upserts served by the API, split by created/updated.",
}, []string{"result"})
