// Package middleware Probe API 서버의 Echo 미들웨어를 제공합니다.
//
//   - PanicRecovery: 핸들러 panic 복구 및 스택 기록
//   - HTTPLogger: 상태 코드별 레벨로 접근 로그 기록 (민감한 쿼리 파라미터 마스킹)
//   - RateLimiting: IP별 요청 속도 제한 (유휴 버킷 정리, 대기 시간 기반 Retry-After)
//   - RequireAuthentication: App Key 인증
//   - ValidateContentType: 요청 본문 Content-Type 검증
//   - Logger: Echo 내부 로그를 애플리케이션 로거로 연결하는 어댑터
package middleware
