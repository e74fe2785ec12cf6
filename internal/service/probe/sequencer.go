// Package probe 푸시 알림 등록 점검 시퀀서(Registration Probe Sequencer)를 구현합니다.
//
// 시퀀서는 등록 서비스의 네 가지 기능(초기화, 기기 식별자 조회, 외부 사용자 로그인,
// 외부 사용자 ID 확인)을 "버튼" 단위로 실행하고, 모든 결과를 세션 로그와 상태로 기록합니다.
// 등록 서비스가 반환한 오류는 호출자에게 전파되지 않고 세션에 Error 상태로 기록됩니다.
package probe

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/darkkaiser/push-probe/internal/service/registration"
	"github.com/darkkaiser/push-probe/internal/service/scheduler"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/darkkaiser/push-probe/pkg/strutil"
)

const component = "probe.sequencer"

// 지연 작업 이름
const (
	taskAutoStart = "auto-start-initialize"
	taskRefetch   = "refetch-identifier"
)

// DelayScheduler 지연 작업을 예약합니다. *scheduler.Scheduler가 구현합니다.
type DelayScheduler interface {
	AfterFunc(name string, d time.Duration, fn func()) scheduler.Cancelable
}

// Options Sequencer 생성 옵션입니다.
type Options struct {
	Provider  registration.Provider
	Scheduler DelayScheduler

	AppID              string
	TestExternalUserID string
	AutoStartDelay     time.Duration
	RefetchDelay       time.Duration

	Sinks   []Sink
	Metrics *Metrics

	// Now 로그 타임스탬프에 사용하는 시계입니다. nil이면 time.Now를 사용합니다.
	Now func() time.Time
}

// Sequencer 점검 세션을 소유하고 버튼 처리를 직렬화합니다.
//
// opMu는 버튼 처리(지연 작업 포함)를 하나씩 실행되도록 보장하고, mu는 세션 상태와 Sink 호출을
// 보호합니다. 등록 서비스 호출은 mu를 잡지 않은 상태에서 수행되므로, 서비스가 호출 도중에
// 알림 훅을 실행해도 교착 상태가 발생하지 않습니다.
type Sequencer struct {
	provider  registration.Provider
	scheduler DelayScheduler

	appID              string
	testExternalUserID string
	autoStartDelay     time.Duration
	refetchDelay       time.Duration

	sinks   []Sink
	metrics *Metrics
	now     func() time.Time

	opMu sync.Mutex

	mu          sync.Mutex
	sess        *session
	autoStarted bool
	closed      bool
	nextTaskID  uint64
	tasks       map[uint64]scheduler.Cancelable

	// 실행 중인 지연 작업
	running sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// New 새 Sequencer를 생성합니다. 세션은 Idle 상태로 시작합니다.
func New(opts Options) *Sequencer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Sequencer{
		provider:  opts.Provider,
		scheduler: opts.Scheduler,

		appID:              opts.AppID,
		testExternalUserID: opts.TestExternalUserID,
		autoStartDelay:     opts.AutoStartDelay,
		refetchDelay:       opts.RefetchDelay,

		sinks:   opts.Sinks,
		metrics: opts.Metrics,
		now:     now,

		sess:  newSession(),
		tasks: make(map[uint64]scheduler.Cancelable),

		ctx:    ctx,
		cancel: cancel,
	}

	s.metrics.setStatus(StatusIdle)

	return s
}

// AutoStart 자동 초기화를 예약합니다. 세션당 한 번만 동작하며, 이후 호출은 경고만 기록합니다.
func (s *Sequencer) AutoStart(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if s.autoStarted {
		s.appendLogLocked(msgAutoStartDuplicate)
		s.refreshLocked()

		applog.WithComponent(component).Warn("자동 시작 중복 요청: 무시합니다")
		return nil
	}
	s.autoStarted = true

	s.appendLogLocked(msgSeparator)
	s.appendLogLocked(msgStarted)
	s.appendLogLocked(fmt.Sprintf(msgProvider, s.provider.Name()))
	s.appendLogLocked(fmt.Sprintf(msgAppID, strutil.MaskPrefix(s.appID, 8)))
	s.appendLogLocked(msgSeparator)
	s.appendLogLocked("")
	s.appendLogLocked(fmt.Sprintf(msgAutoInitScheduled, s.autoStartDelay))
	s.refreshLocked()

	s.scheduleLocked(taskAutoStart, s.autoStartDelay, func(taskCtx context.Context) {
		_ = s.Initialize(taskCtx)
	})

	return nil
}

// Initialize 등록 컨트롤을 생성하고 백엔드 등록을 시작합니다.
// 반환 시 상태는 항상 Ready 또는 Error입니다.
func (s *Sequencer) Initialize(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, stop := s.operationContext(ctx)
	defer stop()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.appendLogLocked(msgSeparator)
	s.appendLogLocked(msgInitStep)
	s.appendLogLocked(fmt.Sprintf(msgAppID, strutil.MaskPrefix(s.appID, 8)))
	s.appendLogLocked(fmt.Sprintf(msgProvider, s.provider.Name()))
	s.setStatusLocked(StatusInitializing, "")
	s.refreshLocked()
	s.mu.Unlock()

	control, err := s.provider.Create(ctx, registration.Settings{AppID: s.appID}, s.hooks())
	if err != nil {
		s.fail(opInitialize, err)
		return nil
	}
	s.appendLog(msgControlReady)

	if err := s.provider.Register(ctx, control); err != nil {
		closeControl(control)
		s.fail(opInitialize, err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.sess.control
	if previous != nil {
		s.appendLogLocked(msgReplaced)
	}
	s.sess.control = control
	s.sess.record = RegistrationRecord{}

	s.appendLogLocked(msgRegisterSent)
	s.appendLogLocked(msgInitDone)
	s.appendLogLocked("")
	s.appendLogLocked(fmt.Sprintf(msgInitNext, s.refetchDelay, 2*s.refetchDelay))
	s.setStatusLocked(StatusReady, "")
	s.refreshLocked()

	s.metrics.observe(opInitialize, outcomeSuccess)

	if previous != nil {
		closeControl(previous)
	}

	return nil
}

// FetchIdentifier 기기 식별자를 조회합니다. 값이 없으면 NotRegistered 상태와 함께 원인과 조치를 안내하며
// 자동으로 재시도하지 않습니다.
func (s *Sequencer) FetchIdentifier(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return s.fetchIdentifier(ctx)
}

func (s *Sequencer) fetchIdentifier(ctx context.Context) error {
	ctx, stop := s.operationContext(ctx)
	defer stop()

	control, err := s.begin(opFetchIdentifier, msgFetchNotInit, msgFetchStep)
	if control == nil {
		return err
	}

	id, ok, err := control.DeviceID(ctx)
	if err != nil {
		s.mu.Lock()
		s.sess.record.DeviceID = Identifier{State: IdentifierFailed}
		s.mu.Unlock()

		s.fail(opFetchIdentifier, err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ok && id != "" {
		s.appendLogLocked(fmt.Sprintf(msgFetchReturned, id))
		s.appendLogLocked(msgFetchSuccess)
		s.appendLogLocked(fmt.Sprintf(msgFetchDeviceID, id))
		s.appendLogLocked("")
		s.appendLogLocked(msgFetchDashboard)

		s.sess.record.DeviceID = presentIdentifier(id)
		s.setStatusLocked(StatusRegistered, "")
		s.metrics.observe(opFetchIdentifier, outcomeSuccess)
	} else {
		s.appendLogLocked(fmt.Sprintf(msgFetchReturned, "<없음>"))
		s.appendLogLocked(msgFetchAbsent)
		s.appendLogLocked(msgFetchAbsentMeaning)
		s.appendLogLocked(msgFetchCauses)
		for _, cause := range notRegisteredCauses(s.refetchDelay) {
			s.appendLogLocked(cause)
		}
		s.appendLogLocked("")
		s.appendLogLocked(fmt.Sprintf(msgFetchRetry, s.refetchDelay))

		s.sess.record.DeviceID = Identifier{State: IdentifierNotSet}
		s.setStatusLocked(StatusNotRegistered, fmt.Sprintf(detailNotRegistered, s.refetchDelay))
		s.metrics.observe(opFetchIdentifier, outcomeAbsent)
	}
	s.refreshLocked()

	return nil
}

// LoginExternalUser 테스트용 외부 사용자 ID로 로그인합니다. 결과가 true이든 false이든
// RefetchDelay 후 기기 식별자 조회를 한 번 예약합니다. 오류가 발생하면 아무것도 예약하지 않습니다.
func (s *Sequencer) LoginExternalUser(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, stop := s.operationContext(ctx)
	defer stop()

	control, err := s.begin(opLogin, msgLoginNotInit, msgLoginStep)
	if control == nil {
		return err
	}

	s.mu.Lock()
	s.appendLogLocked(fmt.Sprintf(msgLoginCall, s.testExternalUserID))
	s.setStatusLocked(StatusPending, fmt.Sprintf(detailLoginPending, s.testExternalUserID))
	s.mu.Unlock()

	confirmed, err := control.Login(ctx, s.testExternalUserID)
	if err != nil {
		s.fail(opLogin, err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendLogLocked(fmt.Sprintf(msgLoginReturned, confirmed))
	if confirmed {
		s.appendLogLocked(msgLoginSuccess)
		s.setStatusLocked(StatusLoggedIn, "")
		s.metrics.observe(opLogin, outcomeSuccess)
	} else {
		s.appendLogLocked(msgLoginUnconfirmed)
		s.setStatusLocked(StatusLoginUnconfirmed, "")
		s.metrics.observe(opLogin, outcomeUnconfirmed)
	}

	s.appendLogLocked("")
	s.appendLogLocked(fmt.Sprintf(msgLoginRefetch, s.refetchDelay))
	s.refreshLocked()

	s.scheduleLocked(taskRefetch, s.refetchDelay, func(taskCtx context.Context) {
		s.appendLog(msgAutoRefetch)
		_ = s.FetchIdentifier(taskCtx)
	})

	return nil
}

// CheckExternalUserID 연결된 외부 사용자 ID를 조회합니다. 값이 없는 것은 오류가 아니며
// (로그인되지 않음) 상태는 조회 이전 값으로 돌아갑니다.
func (s *Sequencer) CheckExternalUserID(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, stop := s.operationContext(ctx)
	defer stop()

	s.mu.Lock()
	prior := s.sess.status
	s.mu.Unlock()

	control, err := s.begin(opCheckExternalID, msgCheckNotInit, msgCheckStep)
	if control == nil {
		return err
	}

	id, ok, err := control.ExternalUserID(ctx)
	if err != nil {
		s.mu.Lock()
		s.sess.record.ExternalUserID = Identifier{State: IdentifierFailed}
		s.mu.Unlock()

		s.fail(opCheckExternalID, err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ok && id != "" {
		s.appendLogLocked(fmt.Sprintf(msgCheckReturned, id))
		s.appendLogLocked(fmt.Sprintf(msgCheckPresent, id))

		s.sess.record.ExternalUserID = presentIdentifier(id)
		s.metrics.observe(opCheckExternalID, outcomeSuccess)
	} else {
		s.appendLogLocked(fmt.Sprintf(msgCheckReturned, "<없음>"))
		s.appendLogLocked(msgCheckAbsent)

		s.sess.record.ExternalUserID = Identifier{State: IdentifierNotSet}
		s.metrics.observe(opCheckExternalID, outcomeAbsent)
	}
	s.setStatusLocked(prior.Status, detailOf(prior))
	s.refreshLocked()

	return nil
}

// Watch 주기 작업에서 호출됩니다. 초기화된 경우에만 기기 식별자를 다시 조회합니다.
func (s *Sequencer) Watch(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	skip := s.closed || s.sess.control == nil
	s.mu.Unlock()

	if skip {
		return
	}

	_ = s.fetchIdentifier(ctx)
}

// DispatchEvent 외부에서 받은 알림 이벤트를 현재 컨트롤의 훅으로 전달합니다.
func (s *Sequencer) DispatchEvent(event registration.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	control := s.sess.control
	s.mu.Unlock()

	if control == nil {
		return ErrNotInitialized
	}

	source, ok := control.(registration.EventSource)
	if !ok {
		return ErrEventsUnsupported
	}

	if !source.Dispatch(event) {
		return ErrNoEventHook
	}

	return nil
}

// Snapshot 현재 세션 상태의 복사본을 반환합니다.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sess.snapshot()
}

// Close 대기 중인 지연 작업을 취소하고 실행 중인 작업이 끝날 때까지 기다린 뒤, 등록 컨트롤을 정리합니다.
// 여러 번 호출해도 안전합니다.
func (s *Sequencer) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	tasks := s.tasks
	s.tasks = make(map[uint64]scheduler.Cancelable)
	s.mu.Unlock()

	s.cancel()

	canceled := 0
	for _, t := range tasks {
		if t.Cancel() {
			canceled++
		}
	}

	s.running.Wait()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	control := s.sess.control
	s.mu.Unlock()

	if control != nil {
		closeControl(control)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"canceled_tasks": canceled,
	}).Info("점검 시퀀서 종료 완료")

	return nil
}

// Start 서비스 종료 신호를 받으면 Close를 호출합니다.
func (s *Sequencer) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		_ = s.Close()
	}()

	applog.WithComponentAndFields(component, applog.Fields{
		"provider": s.provider.Name(),
		"app_id":   strutil.MaskPrefix(s.appID, 8),
	}).Info("서비스 시작 완료: 점검 시퀀서가 준비되었습니다")

	return nil
}

// begin 컨트롤 사전 조건을 확인하고 버튼 처리를 시작합니다.
// 컨트롤이 없으면 로그 한 줄만 남기고 상태는 변경하지 않으며 nil을 반환합니다.
func (s *Sequencer) begin(operation, notInitMsg, stepMsg string) (registration.Control, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	if s.sess.control == nil {
		s.appendLogLocked(notInitMsg)
		s.refreshLocked()

		s.metrics.observe(operation, outcomePrecondition)
		return nil, nil
	}

	s.appendLogLocked(msgSeparator)
	s.appendLogLocked(stepMsg)
	s.setStatusLocked(StatusPending, "")

	return s.sess.control, nil
}

// fail 등록 서비스 오류를 세션에 기록합니다.
func (s *Sequencer) fail(operation string, err error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"operation":  operation,
		"error":      err,
		"error_type": apperrors.TypeOf(err).String(),
	}).Error("등록 서비스 호출 실패")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendLogLocked(fmt.Sprintf(msgError, err))
	s.setStatusLocked(StatusError, fmt.Sprintf(detailError, err))
	s.refreshLocked()

	s.metrics.observe(operation, outcomeError)
}

// hooks 알림 수신/열람 시 세션 로그를 남기는 훅을 생성합니다.
func (s *Sequencer) hooks() registration.Hooks {
	return registration.Hooks{
		OnReceived: func(e registration.Event) {
			s.metrics.event(string(e.Type))
			s.appendLog(fmt.Sprintf(msgNotificationReceived, describeEvent(e)))
		},
		OnOpened: func(e registration.Event) {
			s.metrics.event(string(e.Type))
			s.appendLog(fmt.Sprintf(msgNotificationOpened, describeEvent(e)))
		},
	}
}

// scheduleLocked 지연 작업을 예약하고 취소 핸들을 보관합니다. s.mu를 잡은 상태에서 호출해야 합니다.
func (s *Sequencer) scheduleLocked(name string, d time.Duration, fn func(ctx context.Context)) {
	s.nextTaskID++
	id := s.nextTaskID

	handle := s.scheduler.AfterFunc(name, d, func() {
		s.mu.Lock()
		delete(s.tasks, id)
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.running.Add(1)
		s.mu.Unlock()

		defer s.running.Done()

		fn(s.ctx)
	})

	s.tasks[id] = handle
}

// operationContext 호출자의 ctx를 시퀀서 종료 시에도 취소되도록 묶습니다.
func (s *Sequencer) operationContext(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)

	return ctx, func() {
		stop()
		cancel()
	}
}

func (s *Sequencer) appendLog(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendLogLocked(message)
	s.refreshLocked()
}

func (s *Sequencer) appendLogLocked(message string) {
	entry := LogEntry{Time: s.now(), Message: message}
	s.sess.logs = append(s.sess.logs, entry)

	for _, sink := range s.sinks {
		sink.AppendLog(entry)
	}
}

func (s *Sequencer) setStatusLocked(st Status, detail string) {
	view := newStatusView(st, detail)
	s.sess.status = view
	s.metrics.setStatus(st)

	for _, sink := range s.sinks {
		sink.SetStatus(view)
	}
}

func (s *Sequencer) refreshLocked() {
	for _, sink := range s.sinks {
		sink.Refresh()
	}
}

// detailOf 상태 문구가 기본 문구와 다르면 그대로 돌려줍니다.
func detailOf(v StatusView) string {
	if v.Text == v.Status.Text() {
		return ""
	}
	return v.Text
}

func describeEvent(e registration.Event) string {
	var parts []string
	if e.NotificationID != "" {
		parts = append(parts, "id="+e.NotificationID)
	}
	if e.Title != "" {
		parts = append(parts, "title="+strutil.Truncate(e.Title, 64))
	}
	if e.Body != "" {
		parts = append(parts, "body="+strutil.Truncate(e.Body, 64))
	}
	if len(parts) == 0 {
		return "(내용 없음)"
	}
	return strings.Join(parts, ", ")
}

func closeControl(c registration.Control) {
	closer, ok := c.(io.Closer)
	if !ok {
		return
	}

	if err := closer.Close(); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Warn("등록 컨트롤 정리 실패")
	}
}
