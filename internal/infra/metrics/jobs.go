package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { registerGallery(gallerySubmissionsTotal) }

var gallerySubmissionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gallery_submissions_total",
		Help: "Gallery submissions by media type and outcome.",
	},
	[]string{"type", "outcome"}, // outcome: completed | failed | rejected | dropped
)

func IncGallerySubmission(mediaType, outcome string) {
	gallerySubmissionsTotal.WithLabelValues(norm(mediaType), norm(outcome)).Inc()
}
