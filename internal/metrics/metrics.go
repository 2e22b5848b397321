// Package metrics tracks supervision outcomes in a process-local Prometheus
// registry. No exposition endpoint is opened; the service framework is the
// wrapper's only external channel, so the registry exists for embedding
// hosts and tests to collect from.
package metrics

import (
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Child termination outcomes.
const (
	OutcomeOK      = "ok"      // exited zero on its own
	OutcomeError   = "error"   // exited nonzero on its own
	OutcomeStopped = "stopped" // honored the graceful-stop signal
	OutcomeKilled  = "killed"  // forcibly terminated after the timeout
)

var (
	registry = prometheus.NewRegistry()

	childExits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "srvwrap",
		Name:      "child_exits_total",
		Help:      "Terminations of the wrapped process, by outcome.",
	}, []string{"outcome"})

	forcedKills = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "srvwrap",
		Name:      "forced_kills_total",
		Help:      "Forced terminations issued after the graceful-stop timeout elapsed.",
	})

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "srvwrap",
		Name:      "build_info",
		Help:      "Build metadata for the running srvwrap binary.",
	}, []string{"go_version", "vcs_revision", "vcs_modified"})

	buildInfoOnce sync.Once
)

func init() {
	registry.MustRegister(childExits, forcedKills, buildInfo)
}

// Registry returns the Prometheus registry containing all srvwrap metrics.
func Registry() *prometheus.Registry {
	return registry
}

// AddChildExit records one termination of the wrapped process.
func AddChildExit(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	childExits.WithLabelValues(outcome).Inc()
}

// IncForcedKills records one forced termination.
func IncForcedKills() {
	forcedKills.Inc()
}

// EmitBuildInfo publishes build metadata about the running binary.
func EmitBuildInfo() {
	buildInfoOnce.Do(func() {
		labels := prometheus.Labels{
			"go_version":   runtime.Version(),
			"vcs_revision": "",
			"vcs_modified": "",
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.GoVersion != "" {
				labels["go_version"] = info.GoVersion
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					labels["vcs_revision"] = setting.Value
				case "vcs.modified":
					labels["vcs_modified"] = setting.Value
				}
			}
		}
		buildInfo.With(labels).Set(1)
	})
}
