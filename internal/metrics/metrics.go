package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Database metrics
var (
	// DBQueriesTotal tracks the total number of database queries
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries executed",
		},
		[]string{"query_type", "table", "status"},
	)

	// DBQueryDuration tracks the duration of database queries
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of established connections both in use and idle",
		},
	)

	DBConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of connections currently in use",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle connections",
		},
	)
)

// Assessment metrics
var (
	// AssessmentsTotal counts completed evaluations by disease and tier
	AssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sprayguard_assessments_total",
			Help: "Total number of completed risk assessments",
		},
		[]string{"disease", "tier"},
	)

	// AssessmentErrorsTotal counts rejected or failed evaluations
	AssessmentErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sprayguard_assessment_errors_total",
			Help: "Total number of evaluations that returned an error",
		},
		[]string{"reason"},
	)

	AssessmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sprayguard_assessment_duration_seconds",
			Help:    "Duration of a single evaluation in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	// ComplianceWarningsTotal counts stewardship warnings by rule
	ComplianceWarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sprayguard_compliance_warnings_total",
			Help: "Total number of stewardship warnings raised",
		},
		[]string{"rule"},
	)

	// OptionsFilteredTotal counts catalog entries withheld by the stewardship filter
	OptionsFilteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sprayguard_options_filtered_total",
			Help: "Total number of fungicide options removed by the stewardship filter",
		},
		[]string{"disease", "reason"},
	)

	UnresolvedProductsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sprayguard_unresolved_products_total",
			Help: "Total number of product names that matched no MoA group",
		},
	)

	// PublishTotal counts result publications by outcome
	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sprayguard_publish_total",
			Help: "Total number of assessment publications",
		},
		[]string{"status"},
	)
)

var (
	// AppInfo provides static information about the application
	AppInfo = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sprayguard_app_info",
			Help: "Application information (always 1)",
		},
	)

	// AppStartTime records when the application started
	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sprayguard_app_start_time_seconds",
			Help: "Unix timestamp of when the application started",
		},
	)
)

func init() {
	AppInfo.Set(1)
	AppStartTime.SetToCurrentTime()
}

// RecordDBQuery records a database query execution
func RecordDBQuery(queryType, table string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DBQueriesTotal.WithLabelValues(queryType, table, status).Inc()
	DBQueryDuration.WithLabelValues(queryType, table).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics
func UpdateDBConnectionStats(open, inUse, idle int) {
	DBConnectionsOpen.Set(float64(open))
	DBConnectionsInUse.Set(float64(inUse))
	DBConnectionsIdle.Set(float64(idle))
}

// RecordAssessment records a completed evaluation
func RecordAssessment(disease, tier string, duration time.Duration) {
	AssessmentsTotal.WithLabelValues(disease, tier).Inc()
	AssessmentDuration.Observe(duration.Seconds())
}

// RecordAssessmentError records a failed evaluation
func RecordAssessmentError(reason string) {
	AssessmentErrorsTotal.WithLabelValues(reason).Inc()
}

// RecordWarning records a stewardship warning
func RecordWarning(rule string) {
	ComplianceWarningsTotal.WithLabelValues(rule).Inc()
}

// RecordFilteredOption records a catalog entry removed by the filter
func RecordFilteredOption(disease, reason string) {
	OptionsFilteredTotal.WithLabelValues(disease, reason).Inc()
}

// RecordPublish records the outcome of publishing an assessment
func RecordPublish(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	PublishTotal.WithLabelValues(status).Inc()
}
