package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
)

const maxBodySnippet = 1024

// HTTPStatusError 2xx가 아닌 응답을 나타냅니다.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string
	Header      http.Header
	BodySnippet string
	Cause       error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s) URL: %s", e.StatusCode, e.Status, e.URL)
	if e.BodySnippet != "" {
		msg += ", Body: " + e.BodySnippet
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// StatusCodeFetcher 2xx 이외의 응답을 HTTPStatusError로 변환합니다.
type StatusCodeFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

func NewStatusCodeFetcher(delegate Fetcher) *StatusCodeFetcher {
	return &StatusCodeFetcher{delegate: delegate}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippet))

	return nil, &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         redactURL(req.URL),
		Header:      resp.Header.Clone(),
		BodySnippet: string(body),
		Cause:       apperrors.New(statusErrorType(resp.StatusCode), http.StatusText(resp.StatusCode)),
	}
}

func statusErrorType(code int) apperrors.ErrorType {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return apperrors.Unauthorized
	case code == http.StatusNotFound:
		return apperrors.NotFound
	case code == http.StatusRequestTimeout:
		return apperrors.Timeout
	case code == http.StatusTooManyRequests || code >= 500:
		return apperrors.Unavailable
	default:
		return apperrors.ExecutionFailed
	}
}

// redactURL 쿼리 파라미터 값을 가린 URL 문자열을 반환합니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	safe := *u
	safe.User = nil
	if q := safe.Query(); len(q) > 0 {
		for k := range q {
			q.Set(k, "xxxxx")
		}
		safe.RawQuery = q.Encode()
	}

	return safe.String()
}
