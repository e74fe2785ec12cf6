package probe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 버튼 처리 결과(outcome) 라벨 값
const (
	outcomeSuccess      = "success"
	outcomeAbsent       = "absent"
	outcomeUnconfirmed  = "unconfirmed"
	outcomeError        = "error"
	outcomePrecondition = "precondition_failed"
)

// 버튼(operation) 라벨 값
const (
	opInitialize      = "initialize"
	opFetchIdentifier = "fetch_identifier"
	opLogin           = "login"
	opCheckExternalID = "check_external_id"
)

// Metrics 점검 시퀀서의 Prometheus 지표입니다.
type Metrics struct {
	operations *prometheus.CounterVec
	status     *prometheus.GaugeVec
	events     *prometheus.CounterVec
}

// NewMetrics reg에 지표를 등록합니다. reg가 nil이면 등록하지 않은 지표를 생성합니다.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "probe_operations_total",
				Help: "Total probe button invocations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		status: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "probe_status",
				Help: "Current probe status (1 for the active status, 0 otherwise)",
			},
			[]string{"status"},
		),
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "probe_notification_events_total",
				Help: "Total notification events delivered to the registration hooks by type",
			},
			[]string{"type"},
		),
	}
}

func (m *Metrics) observe(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) setStatus(s Status) {
	if m == nil {
		return
	}
	for st := range statusTable {
		v := 0.0
		if st == s {
			v = 1
		}
		m.status.WithLabelValues(st.Key()).Set(v)
	}
}

func (m *Metrics) event(eventType string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(eventType).Inc()
}
