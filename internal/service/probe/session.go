package probe

import (
	"fmt"
	"time"

	"github.com/darkkaiser/push-probe/internal/service/registration"
)

// LogEntry 세션 로그의 한 줄입니다.
type LogEntry struct {
	Time    time.Time `json:"time" yaml:"time"`
	Message string    `json:"message" yaml:"message"`
}

// String "[HH:MM:SS] 메시지" 형식으로 출력합니다.
func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Time.Format(time.TimeOnly), e.Message)
}

// session 프로세스 수명 동안 유지되는 점검 상태입니다. Sequencer의 mu로 보호됩니다.
type session struct {
	control registration.Control
	record  RegistrationRecord
	status  StatusView
	logs    []LogEntry
}

func newSession() *session {
	return &session{status: newStatusView(StatusIdle, "")}
}

// Snapshot 표시용으로 복사한 세션 상태입니다.
type Snapshot struct {
	Initialized bool               `json:"initialized" yaml:"initialized"`
	Status      StatusView         `json:"status" yaml:"status"`
	Record      RegistrationRecord `json:"record" yaml:"record"`
	Logs        []LogEntry         `json:"logs" yaml:"logs"`
}

func (s *session) snapshot() Snapshot {
	logs := make([]LogEntry, len(s.logs))
	copy(logs, s.logs)

	return Snapshot{
		Initialized: s.control != nil,
		Status:      s.status,
		Record:      s.record,
		Logs:        logs,
	}
}
