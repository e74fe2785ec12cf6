package probe

import (
	applog "github.com/darkkaiser/push-probe/pkg/log"
)

// Sink 세션 로그와 상태 변화를 표시 계층(콘솔, 메신저 등)으로 전달합니다.
//
// 모든 호출은 Sequencer 내부에서 직렬화되어 들어오므로 구현체는 별도의 잠금이 필요 없지만,
// 오래 걸리는 작업(네트워크 전송 등)은 비동기로 처리해야 합니다.
type Sink interface {
	AppendLog(entry LogEntry)
	SetStatus(view StatusView)

	// Refresh 한 번의 버튼 처리가 끝났음을 알립니다.
	Refresh()
}

// consoleSink 세션 로그를 애플리케이션 로그로 출력합니다.
type consoleSink struct {
	logger *applog.Entry
}

// NewConsoleSink "[PROBE]" 접두어를 붙여 세션 로그를 logrus로 출력하는 Sink를 반환합니다.
func NewConsoleSink() Sink {
	return &consoleSink{logger: applog.WithComponent(component)}
}

func (s *consoleSink) AppendLog(entry LogEntry) {
	s.logger.Info("[PROBE] " + entry.Message)
}

func (s *consoleSink) SetStatus(view StatusView) {
	s.logger.WithFields(applog.Fields{
		"status": view.Status.Key(),
		"color":  view.Color,
	}).Debug("[PROBE] 상태: " + view.Text)
}

func (s *consoleSink) Refresh() {}
