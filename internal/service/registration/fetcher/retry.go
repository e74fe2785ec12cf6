package fetcher

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	applog "github.com/darkkaiser/push-probe/pkg/log"
)

const (
	maxAllowedRetries    = 10
	defaultMaxRetryDelay = 30 * time.Second
)

// RetryFetcher 일시적인 오류(네트워크 오류, 408, 429, 5xx)에 대해 요청을 재시도합니다.
//
// 재시도 간격은 지수 백오프에 Full Jitter를 적용하며, 서버가 Retry-After 헤더를 보내면 그 값을 따릅니다.
// POST, PATCH 요청은 중복 생성/수정을 막기 위해 재시도하지 않습니다.
type RetryFetcher struct {
	delegate Fetcher

	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration
}

var _ Fetcher = (*RetryFetcher)(nil)

func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay, maxRetryDelay time.Duration) *RetryFetcher {
	maxRetries = max(0, min(maxRetries, maxAllowedRetries))

	if minRetryDelay <= 0 {
		minRetryDelay = time.Second
	}
	if maxRetryDelay == 0 {
		maxRetryDelay = defaultMaxRetryDelay
	}
	if maxRetryDelay < minRetryDelay {
		maxRetryDelay = minRetryDelay
	}

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    maxRetries,
		minRetryDelay: minRetryDelay,
		maxRetryDelay: maxRetryDelay,
	}
}

func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	retries := f.maxRetries
	if req.Method == http.MethodPost || req.Method == http.MethodPatch {
		retries = 0
	}
	if req.Body != nil && req.GetBody == nil {
		retries = 0
	}

	var lastErr error
	for i := 0; i <= retries; i++ {
		if i > 0 {
			delay, err := f.nextDelay(i, lastErr)
			if err != nil {
				return nil, err
			}

			applog.WithComponentAndFields(component, applog.Fields{
				"url":         redactURL(req.URL),
				"retry":       i,
				"max_retries": retries,
				"delay":       delay.String(),
				"error":       lastErr.Error(),
			}).Warn("재시도 대기 중: 일시적 오류로 인해 요청 재시도를 준비합니다")

			if err := sleep(req.Context(), delay); err != nil {
				return nil, err
			}

			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, apperrors.Wrap(err, apperrors.Internal, "재시도 요청 본문 생성에 실패했습니다")
				}
				req = req.Clone(req.Context())
				req.Body = body
			}
		}

		resp, err := f.delegate.Do(req)
		if err == nil {
			return resp, nil
		}

		if req.Context().Err() != nil || !isRetriable(err) {
			return nil, err
		}

		lastErr = err
	}

	if retries == 0 {
		return nil, lastErr
	}

	return nil, apperrors.Wrapf(lastErr, apperrors.Unavailable, "최대 재시도 횟수(%d)를 초과했습니다", retries)
}

// nextDelay i번째 재시도 전 대기 시간을 계산합니다.
func (f *RetryFetcher) nextDelay(i int, lastErr error) (time.Duration, error) {
	var statusErr *HTTPStatusError
	if errors.As(lastErr, &statusErr) {
		if d, ok := parseRetryAfter(statusErr.Header.Get("Retry-After")); ok {
			if d > f.maxRetryDelay {
				return 0, apperrors.Newf(apperrors.Unavailable, "서버가 요구한 재시도 대기 시간(%s)이 허용 한도(%s)를 초과합니다", d, f.maxRetryDelay)
			}
			return d, nil
		}
	}

	delay := min(f.minRetryDelay*time.Duration(1<<(i-1)), f.maxRetryDelay)
	delay = time.Duration(rand.Int64N(int64(delay) + 1))
	if delay < time.Millisecond {
		delay = f.minRetryDelay
	}

	return delay, nil
}

func isRetriable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return true
		case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
			return false
		}
		return statusErr.StatusCode >= 500
	}

	// 응답을 받지 못한 네트워크 오류
	return true
}

// parseRetryAfter 초 단위 숫자 또는 HTTP-date 형식을 해석합니다.
func parseRetryAfter(v string) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		return max(0, time.Until(t)), true
	}

	return 0, false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
