package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/moyoez/sharekit/share"
)

const (
	Namespace = "sharekit"

	NameDialogShows    = "dialog_shows_total"
	NameDialogResults  = "dialog_results_total"
	NamePendingDialogs = "pending_dialogs"
	LabelMode          = "mode"
	LabelContentType   = "content_type"
	LabelOutcome       = "outcome"
)

var DialogShows = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameDialogShows,
		Help:      "Share dialogs initiated, by channel",
		Namespace: Namespace,
	},
	[]string{LabelMode, LabelContentType},
)

var DialogResults = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameDialogResults,
		Help:      "Share dialog outcomes",
		Namespace: Namespace,
	},
	[]string{LabelOutcome},
)

var PendingDialogs = promauto.NewGaugeFunc(
	prometheus.GaugeOpts{
		Name:      NamePendingDialogs,
		Help:      "Share dialogs waiting for an outcome",
		Namespace: Namespace,
	},
	func() float64 { return float64(share.PendingDialogCount()) },
)
