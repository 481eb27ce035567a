// Package obs holds the Prometheus instrumentation for the ingest pipeline.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Uploads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adsdash_uploads_total",
		Help: "Uploads committed to the session.",
	})
	UploadErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adsdash_upload_errors_total",
		Help: "Uploads aborted by read or structural CSV errors.",
	})
	UploadsSuperseded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adsdash_uploads_superseded_total",
		Help: "Finished uploads discarded because a newer one claimed the session.",
	})
	RowsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adsdash_rows_ingested_total",
		Help: "Raw rows parsed from committed uploads.",
	})
	RowsDroppedBadDate = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adsdash_rows_dropped_bad_date_total",
		Help: "Rows excluded from normalization for an unparsable date.",
	})
)
