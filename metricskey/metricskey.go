// Package metricskey specifies the metrics emitted by this repo.
package metricskey

import "github.com/effective-security/metrics"

// Perf
var (
	// PerfCSRGenerate is perf metric
	PerfCSRGenerate = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_csr_generate",
		Help:         "perf_csr_generate provides the sample metrics of CSR generation",
		RequiredTags: []string{"algo"},
	}

	// PerfCSRAnalyze is perf metric
	PerfCSRAnalyze = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_csr_analyze",
		Help:         "perf_csr_analyze provides the sample metrics of CSR analysis",
		RequiredTags: []string{"algo"},
	}
)

// Metrics returns slice of metrics from this repo
var Metrics = []*metrics.Describe{
	&PerfCSRGenerate,
	&PerfCSRAnalyze,
}
