package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

var buildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "sixtieslife_build_info",
		Help: "Always 1; labels carry the bot version, commit and Go runtime.",
	},
	[]string{"version", "commit", "go_version"},
)

func init() { register(buildInfo) }

// SetBuildInfo is called once at startup with the ldflags values.
func SetBuildInfo(version, commit string) {
	if version == "" {
		version = "dev"
	}
	buildInfo.WithLabelValues(version, commit, runtime.Version()).Set(1)
}
