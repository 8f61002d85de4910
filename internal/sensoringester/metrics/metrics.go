package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type (
	DBOperation   string
	DiscardReason string
)

const (
	DBOperationCreateTable DBOperation = "create_table"
	DBOperationCopy        DBOperation = "copy"

	// DiscardReasonMalformed covers wrong field counts, non-numeric fields and
	// unparseable timestamps; DiscardReasonOutOfRange covers readings failing the
	// temperature/humidity bounds. Both are dropped silently, the reason tag exists
	// for diagnostics only.
	DiscardReasonMalformed  DiscardReason = "malformed"
	DiscardReasonOutOfRange DiscardReason = "out_of_range"
)

const MetricsPrefix = "sensor_ingester_"

type Metrics struct {
	linesDiscarded *prometheus.CounterVec
	rowsInserted   *prometheus.CounterVec
	dbErrors       *prometheus.CounterVec
}

var m = newMetrics(MetricsPrefix)

// Get returns the process-wide metrics. Counters are registered once on the default
// prometheus registry.
func Get() *Metrics {
	return m
}

func newMetrics(prefix string) *Metrics {
	return &Metrics{
		linesDiscarded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "lines_discarded",
			Help: "Number of input lines dropped, grouped by discard reason",
		}, []string{"reason"}),
		rowsInserted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "rows_inserted",
			Help: "Number of rows appended, grouped by destination table",
		}, []string{"table"}),
		dbErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "db_errors",
			Help: "Number of database errors, grouped by operation",
		}, []string{"operation"}),
	}
}

func (m *Metrics) RecordLineDiscarded(reason DiscardReason) {
	m.linesDiscarded.With(map[string]string{"reason": string(reason)}).Inc()
}

func (m *Metrics) RecordRowsInserted(table string, count int) {
	m.rowsInserted.With(map[string]string{"table": table}).Add(float64(count))
}

func (m *Metrics) RecordDBError(operation DBOperation) {
	m.dbErrors.With(map[string]string{"operation": string(operation)}).Inc()
}
