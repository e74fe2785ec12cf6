package log

import (
	"github.com/sirupsen/logrus"
)

// 호출 측이 logrus를 직접 import하지 않도록 자주 쓰는 타입과 상수를 다시 노출합니다.

type (
	Level     = logrus.Level
	Fields    = logrus.Fields
	Entry     = logrus.Entry
	Logger    = logrus.Logger
	Hook      = logrus.Hook
	Formatter = logrus.Formatter
)

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	TraceLevel = logrus.TraceLevel
)

// AllLevels 모든 로그 레벨 목록입니다.
var AllLevels = logrus.AllLevels
