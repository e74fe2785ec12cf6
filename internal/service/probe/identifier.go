package probe

import (
	"encoding/json"
)

// IdentifierState 식별자 값의 상태입니다.
type IdentifierState int

const (
	// IdentifierUnknown 아직 조회하지 않았습니다.
	IdentifierUnknown IdentifierState = iota
	// IdentifierPresent 조회 결과 값이 존재합니다.
	IdentifierPresent
	// IdentifierNotSet 조회했지만 값이 없습니다. 어떤 실제 식별자 문자열과도 구별됩니다.
	IdentifierNotSet
	// IdentifierFailed 조회 중 오류가 발생했습니다.
	IdentifierFailed
)

var identifierStateNames = [...]string{"unknown", "present", "not_set", "failed"}

func (s IdentifierState) String() string {
	if int(s) >= 0 && int(s) < len(identifierStateNames) {
		return identifierStateNames[s]
	}
	return "unknown"
}

func (s IdentifierState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Identifier 기기 식별자 또는 외부 사용자 ID입니다. Value는 State가 Present일 때만 의미가 있습니다.
type Identifier struct {
	State IdentifierState
	Value string
}

func presentIdentifier(v string) Identifier {
	return Identifier{State: IdentifierPresent, Value: v}
}

func (id Identifier) IsPresent() bool {
	return id.State == IdentifierPresent
}

// Display 결과 화면에 표시할 문자열입니다.
func (id Identifier) Display() string {
	switch id.State {
	case IdentifierPresent:
		return id.Value
	case IdentifierNotSet:
		return "설정되지 않음"
	case IdentifierFailed:
		return "조회 실패"
	default:
		return "-"
	}
}

type identifierJSON struct {
	State IdentifierState `json:"state" yaml:"state"`
	Value string          `json:"value,omitempty" yaml:"value,omitempty"`
}

func (id Identifier) view() identifierJSON {
	v := identifierJSON{State: id.State}
	if id.State == IdentifierPresent {
		v.Value = id.Value
	}
	return v
}

func (id Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.view())
}

func (id Identifier) MarshalYAML() (any, error) {
	return id.view(), nil
}

// RegistrationRecord 점검으로 확인한 기기 식별자와 외부 사용자 ID입니다.
type RegistrationRecord struct {
	DeviceID       Identifier `json:"device_id" yaml:"device_id"`
	ExternalUserID Identifier `json:"external_user_id" yaml:"external_user_id"`
}
