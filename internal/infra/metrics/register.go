package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	coreOnce, serverOnce, galleryOnce sync.Once

	// shared by both processes: build info and generation calls
	coreCollectors []prometheus.Collector
	// generation endpoint only
	serverCollectors []prometheus.Collector
	// gallery client only
	galleryCollectors []prometheus.Collector
)

// register is called by init() in each metrics file to enqueue collectors.
func register(cs ...prometheus.Collector) {
	coreCollectors = append(coreCollectors, cs...)
}

func registerServer(cs ...prometheus.Collector) {
	serverCollectors = append(serverCollectors, cs...)
}

func registerGallery(cs ...prometheus.Collector) {
	galleryCollectors = append(galleryCollectors, cs...)
}

// MustRegister registers the endpoint process collectors with Prometheus
// exactly once.
func MustRegister() {
	mustRegisterCore()
	serverOnce.Do(func() { mustRegisterAll(serverCollectors) })
}

// MustRegisterGallery registers the gallery client collectors exactly once.
func MustRegisterGallery() {
	mustRegisterCore()
	galleryOnce.Do(func() { mustRegisterAll(galleryCollectors) })
}

func mustRegisterCore() {
	coreOnce.Do(func() { mustRegisterAll(coreCollectors) })
}

func mustRegisterAll(cs []prometheus.Collector) {
	if len(cs) > 0 {
		prometheus.MustRegister(cs...)
	}
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
