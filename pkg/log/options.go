package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 옵션입니다.
type Options struct {
	Name  string // 로그 파일명 접두어 (예: push-probe -> push-probe.log)
	Dir   string // 로그 디렉토리 (기본값: logs)
	Level Level

	MaxAge     int // 보관 일수 (0: 삭제 안 함)
	MaxSizeMB  int // 로테이션 기준 크기 (0: 100MB)
	MaxBackups int // 백업 파일 수 (0: 20개)

	EnableCriticalLog bool // ERROR 이상을 <name>.critical.log에 추가로 기록
	EnableVerboseLog  bool // DEBUG 이하를 <name>.verbose.log에 분리 기록
	EnableConsoleLog  bool

	ReportCaller bool

	// 호출 위치 출력 시 잘라낼 패키지 경로 접두어
	CallerPathPrefix string
}

// Validate 옵션 값을 검증합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("로그 파일명(Name)이 설정되지 않았습니다")
	}

	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}

	if opts.MaxAge < 0 || opts.MaxSizeMB < 0 || opts.MaxBackups < 0 {
		return fmt.Errorf("MaxAge/MaxSizeMB/MaxBackups는 0 이상이어야 합니다 (%d/%d/%d)", opts.MaxAge, opts.MaxSizeMB, opts.MaxBackups)
	}

	return nil
}
