package errors

import (
	"path/filepath"
	"runtime"
	"strconv"
)

// callerSkip callerOf와 New/Wrap 두 단계를 건너뛰어 에러를 만든 위치를 가리킵니다.
const callerSkip = 2

// callerOf 에러를 생성한 소스 위치를 "파일명:줄번호" 형식으로 반환합니다.
func callerOf(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}
