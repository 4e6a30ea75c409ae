package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, path and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quikbill_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quikbill_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// InvoicesCommitted counts invoices durably written to the ledger
	InvoicesCommitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quikbill_invoices_committed_total",
			Help: "Total number of invoices committed",
		},
	)

	// InvoiceCommitFailures counts failed commits by transaction stage
	InvoiceCommitFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quikbill_invoice_commit_failures_total",
			Help: "Total number of failed invoice commits by stage",
		},
		[]string{"stage"},
	)

	// InvoicePDFFailures counts invoice renders that failed after commit
	InvoicePDFFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quikbill_invoice_pdf_failures_total",
			Help: "Total number of invoice PDF render failures",
		},
	)
)
