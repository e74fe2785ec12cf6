package probe

import (
	"fmt"

	"github.com/iancoleman/strcase"
)

// Status 점검 세션의 마지막 상태입니다.
type Status int

const (
	StatusIdle Status = iota
	StatusInitializing
	// StatusPending 버튼 입력 직후 결과가 나오기 전까지의 일시 상태입니다.
	StatusPending
	StatusReady
	StatusRegistered
	StatusNotRegistered
	StatusLoggedIn
	StatusLoginUnconfirmed
	StatusError
)

// Color 상태 표시에 사용하는 색상 태그입니다.
type Color string

const (
	ColorGrey   Color = "grey"
	ColorOrange Color = "orange"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
)

type statusInfo struct {
	name  string
	text  string
	color Color
}

var statusTable = map[Status]statusInfo{
	StatusIdle:             {"Idle", "점검 대기 중", ColorGrey},
	StatusInitializing:     {"Initializing", "⏳ 등록 컨트롤 생성 중...", ColorOrange},
	StatusPending:          {"Pending", "⏳ 처리 중...", ColorOrange},
	StatusReady:            {"Ready", "✅ 등록 서비스 초기화 완료", ColorGreen},
	StatusRegistered:       {"Registered", "✅ 기기 등록 완료", ColorGreen},
	StatusNotRegistered:    {"NotRegistered", "⏳ 아직 등록되지 않음", ColorOrange},
	StatusLoggedIn:         {"LoggedIn", "✅ 로그인 완료", ColorGreen},
	StatusLoginUnconfirmed: {"LoginUnconfirmed", "⚠️ 로그인이 확인되지 않음", ColorOrange},
	StatusError:            {"Error", "❌ 오류 발생", ColorRed},
}

func (s Status) String() string {
	if info, ok := statusTable[s]; ok {
		return info.name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Text 사람이 읽는 상태 문구입니다.
func (s Status) Text() string {
	if info, ok := statusTable[s]; ok {
		return info.text
	}
	return s.String()
}

func (s Status) Color() Color {
	if info, ok := statusTable[s]; ok {
		return info.color
	}
	return ColorGrey
}

// Key API 응답과 메트릭 라벨에 사용하는 snake_case 키입니다. (예: "not_registered")
func (s Status) Key() string {
	return strcase.ToSnake(s.String())
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.Key()), nil
}

// StatusView 표시 계층에 전달되는 상태 값입니다. Detail은 상태 문구를 대체합니다.
type StatusView struct {
	Status Status `json:"status" yaml:"status"`
	Text   string `json:"text" yaml:"text"`
	Color  Color  `json:"color" yaml:"color"`
}

func newStatusView(s Status, detail string) StatusView {
	text := s.Text()
	if detail != "" {
		text = detail
	}

	return StatusView{Status: s, Text: text, Color: s.Color()}
}
