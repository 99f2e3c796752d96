package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "volunteerhub"

// Registry is the Prometheus registry for all metrics.
var Registry = prometheus.NewRegistry()

// SignInsTotal counts email sign-in attempts by stage and outcome.
var SignInsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of email sign-in steps",
	},
	[]string{"stage", "result"}, // stage: request|verify|refresh, result: ok|rejected
)

// LocationCacheTotal counts cached location lookups.
var LocationCacheTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "location_cache_total",
		Help:      "Total number of event location cache lookups",
	},
	[]string{"result"}, // hit|miss
)

// VerificationTokensPurged counts expired sign-in tokens removed by the purge job.
var VerificationTokensPurged = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_tokens_purged_total",
		Help:      "Total number of expired verification tokens deleted",
	},
)

// Init registers the runtime collectors.
func Init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// SignIn records one sign-in step.
func SignIn(stage string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	SignInsTotal.WithLabelValues(stage, result).Inc()
}
