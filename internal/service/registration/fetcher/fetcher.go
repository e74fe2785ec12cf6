// Package fetcher 외부 REST API 호출에 사용하는 HTTP 요청 체인을 제공합니다.
//
// 체인 구성: RetryFetcher -> StatusCodeFetcher -> HTTPFetcher
package fetcher

import (
	"net/http"
	"time"

	"github.com/darkkaiser/push-probe/internal/config"
	"github.com/darkkaiser/push-probe/internal/pkg/version"
)

const component = "registration.fetcher"

// Fetcher HTTP 요청을 수행합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher http.Client로 요청을 수행하고 공통 헤더를 채웁니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 요청 전체 타임아웃이 적용된 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: config.AppName + "/" + version.Get().Version,
	}
}

func (f *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	return f.client.Do(req)
}

// New 설정에 따라 재시도와 상태 코드 검사가 포함된 Fetcher 체인을 생성합니다.
func New(registration config.RegistrationConfig, retry config.HTTPRetryConfig) Fetcher {
	var f Fetcher = NewHTTPFetcher(registration.RequestTimeout)
	f = NewStatusCodeFetcher(f)
	f = NewRetryFetcher(f, retry.MaxRetries, retry.RetryDelay, 0)

	return f
}
