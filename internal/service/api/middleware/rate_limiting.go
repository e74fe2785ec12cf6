package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// limiterIdleTTL 이 시간 동안 요청이 없던 클라이언트의 버킷은 새 클라이언트가 들어올 때 정리됩니다.
const limiterIdleTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters 클라이언트 IP별 Token Bucket을 보관합니다.
type clientLimiters struct {
	mu      sync.Mutex
	buckets map[string]*clientBucket
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

func newClientLimiters(requestsPerSecond, burst int, idleTTL time.Duration) *clientLimiters {
	return &clientLimiters{
		buckets: make(map[string]*clientBucket),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// take ip의 토큰을 하나 소비합니다. 토큰이 없으면 false와 함께 다음 토큰까지 남은 시간을 반환합니다.
func (l *clientLimiters) take(ip string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	b, ok := l.buckets[ip]
	if !ok {
		l.evictIdleLocked(now)
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return delay, false
	}

	return 0, true
}

func (l *clientLimiters) evictIdleLocked(now time.Time) {
	for ip, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idleTTL {
			delete(l.buckets, ip)
		}
	}
}

// retryAfterSeconds 대기 시간을 Retry-After 헤더 값(올림한 초, 최소 1)으로 변환합니다.
func retryAfterSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// RateLimiting IP별 요청 속도 제한 미들웨어를 반환합니다.
// 제한을 넘으면 다음 토큰까지의 대기 시간을 Retry-After 헤더에 담아 429를 반환합니다.
//
// requestsPerSecond 또는 burst가 0 이하이면 panic이 발생합니다.
func RateLimiting(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic("[RateLimiting] requestsPerSecond는 양수여야 합니다")
	}
	if burst <= 0 {
		panic("[RateLimiting] burst는 양수여야 합니다")
	}

	limiters := newClientLimiters(requestsPerSecond, burst, limiterIdleTTL)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			wait, ok := limiters.take(ip)
			if !ok {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimiting, applog.Fields{
					"remote_ip": ip,
					"route":     c.Path(),
					"wait":      wait.String(),
				}).Warn("요청 속도 제한 초과")

				c.Response().Header().Set("Retry-After", retryAfterSeconds(wait))

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
