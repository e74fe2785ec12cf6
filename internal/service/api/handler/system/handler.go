// Package system 헬스체크와 버전 정보 같은 인증이 필요 없는 시스템 엔드포인트를 처리합니다.
package system

import (
	"net/http"
	"time"

	"github.com/darkkaiser/push-probe/internal/pkg/version"
	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	"github.com/darkkaiser/push-probe/internal/service/api/model/system"
	"github.com/darkkaiser/push-probe/internal/service/probe"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/labstack/echo/v4"
)

// SessionReader 현재 점검 세션 상태를 조회합니다. *probe.Sequencer가 구현합니다.
type SessionReader interface {
	Snapshot() probe.Snapshot
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	session SessionReader

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(session SessionReader, buildInfo version.Info) *Handler {
	if session == nil {
		panic("SessionReader는 필수입니다")
	}

	return &Handler{
		session: session,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 점검 세션의 상태를 확인합니다.
// @Description 인증 없이 호출 가능하며, 모니터링 시스템에서 사용됩니다.
// @Description
// @Description 등록 서비스가 초기화되지 않았거나 마지막 처리에서 오류가 발생하면 degraded로 표시되며,
// @Description 이 경우에도 HTTP 상태는 200입니다.
// @Description
// @Description 응답 필드:
// @Description - status: 전체 서버 상태 (healthy, degraded)
// @Description - uptime: 서버 가동 시간(초)
// @Description - probe_status: 현재 점검 세션 상태 키
// @Description - dependencies: 의존성별 상태 (probe_sequencer, registration_control)
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	snap := h.session.Snapshot()

	deps := map[string]system.DependencyStatus{
		constants.DependencyProbeSequencer:      sequencerStatus(snap),
		constants.DependencyRegistrationControl: controlStatus(snap),
	}

	serverStatus := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			serverStatus = constants.HealthStatusDegraded
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		ProbeStatus:  snap.Status.Status.Key(),
		Dependencies: deps,
	})
}

func sequencerStatus(snap probe.Snapshot) system.DependencyStatus {
	if snap.Status.Status == probe.StatusError {
		return system.DependencyStatus{
			Status:  constants.HealthStatusDegraded,
			Message: constants.MsgDepStatusError,
		}
	}

	return system.DependencyStatus{
		Status:  constants.HealthStatusHealthy,
		Message: constants.MsgDepStatusHealthy,
	}
}

func controlStatus(snap probe.Snapshot) system.DependencyStatus {
	if !snap.Initialized {
		return system.DependencyStatus{
			Status:  constants.HealthStatusDegraded,
			Message: constants.MsgDepStatusNotInitialized,
		}
	}

	return system.DependencyStatus{
		Status:  constants.HealthStatusHealthy,
		Message: constants.MsgDepStatusHealthy,
	}
}

// VersionHandler godoc
// @Summary 빌드 정보 조회
// @Description 빌드 버전, 커밋, Go 런타임 정보를 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "빌드 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"remote_ip": c.RealIP(),
	}).Debug("버전 정보 요청")

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:    h.buildInfo.Version,
		Commit:     h.buildInfo.Commit,
		BuildDate:  h.buildInfo.BuildDate,
		GoVersion:  h.buildInfo.GoVersion,
		OS:         h.buildInfo.OS,
		Arch:       h.buildInfo.Arch,
		DirtyBuild: h.buildInfo.DirtyBuild,
	})
}
