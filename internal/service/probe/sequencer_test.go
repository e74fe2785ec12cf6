package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/push-probe/internal/service/registration"
	"github.com/darkkaiser/push-probe/internal/service/registration/mocks"
	"github.com/darkkaiser/push-probe/internal/service/registration/simulated"
	"github.com/darkkaiser/push-probe/internal/service/scheduler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// Test Helpers
// =============================================================================

type fakeTask struct {
	name     string
	delay    time.Duration
	fn       func()
	canceled bool
	fired    bool
}

// fakeScheduler 예약된 작업을 실행하지 않고 보관했다가 테스트가 직접 실행합니다.
type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
}

func (f *fakeScheduler) AfterFunc(name string, d time.Duration, fn func()) scheduler.Cancelable {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTask{name: name, delay: d, fn: fn}
	f.tasks = append(f.tasks, t)

	return &fakeHandle{owner: f, task: t}
}

func (f *fakeScheduler) scheduled() []*fakeTask {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*fakeTask(nil), f.tasks...)
}

func (f *fakeScheduler) fire(t *testing.T, task *fakeTask) {
	t.Helper()

	f.mu.Lock()
	require.False(t, task.canceled, "취소된 작업은 실행할 수 없습니다")
	require.False(t, task.fired, "이미 실행된 작업입니다")
	task.fired = true
	f.mu.Unlock()

	task.fn()
}

type fakeHandle struct {
	owner *fakeScheduler
	task  *fakeTask
}

func (h *fakeHandle) Cancel() bool {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()

	if h.task.canceled || h.task.fired {
		return false
	}
	h.task.canceled = true

	return true
}

// recordingSink Sink 호출 내역을 기록합니다.
type recordingSink struct {
	mu       sync.Mutex
	logs     []LogEntry
	statuses []StatusView
	refresh  int
}

func (r *recordingSink) AppendLog(entry LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, entry)
}

func (r *recordingSink) SetStatus(view StatusView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, view)
}

func (r *recordingSink) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refresh++
}

func (r *recordingSink) statusSequence() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq := make([]Status, 0, len(r.statuses))
	for _, v := range r.statuses {
		seq = append(seq, v.Status)
	}
	return seq
}

type fixture struct {
	seq      *Sequencer
	provider *mocks.MockProvider
	sched    *fakeScheduler
	sink     *recordingSink
	metrics  *Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		provider: &mocks.MockProvider{},
		sched:    &fakeScheduler{},
		sink:     &recordingSink{},
		metrics:  NewMetrics(prometheus.NewRegistry()),
	}
	f.seq = New(Options{
		Provider:           f.provider,
		Scheduler:          f.sched,
		AppID:              "6bb7df1b-6014-498a-ac2e-67abb63e4751",
		TestExternalUserID: "test_user_12345",
		AutoStartDelay:     2 * time.Second,
		RefetchDelay:       5 * time.Second,
		Sinks:              []Sink{f.sink},
		Metrics:            f.metrics,
	})
	t.Cleanup(func() { _ = f.seq.Close() })

	return f
}

// initialized 컨트롤이 준비된 상태의 fixture를 반환합니다.
func initialized(t *testing.T, control registration.Control) *fixture {
	t.Helper()

	f := newFixture(t)
	f.provider.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(control, nil).Once()
	f.provider.On("Register", mock.Anything, control).Return(nil).Once()

	require.NoError(t, f.seq.Initialize(context.Background()))
	require.Equal(t, StatusReady, f.seq.Snapshot().Status.Status)

	return f
}

func logContains(snap Snapshot, substr string) bool {
	for _, e := range snap.Logs {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// =============================================================================
// Precondition
// =============================================================================

func TestSequencer_WithoutControl_LogsOnceAndSkipsSDK(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		op        func(s *Sequencer) error
		want      string
	}{
		{"FetchIdentifier", opFetchIdentifier, func(s *Sequencer) error { return s.FetchIdentifier(context.Background()) }, msgFetchNotInit},
		{"LoginExternalUser", opLogin, func(s *Sequencer) error { return s.LoginExternalUser(context.Background()) }, msgLoginNotInit},
		{"CheckExternalUserID", opCheckExternalID, func(s *Sequencer) error { return s.CheckExternalUserID(context.Background()) }, msgCheckNotInit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			require.NoError(t, tt.op(f.seq))

			snap := f.seq.Snapshot()
			require.Len(t, snap.Logs, 1)
			assert.Equal(t, tt.want, snap.Logs[0].Message)
			assert.Equal(t, StatusIdle, snap.Status.Status)
			assert.False(t, snap.Initialized)
			assert.Empty(t, f.sched.scheduled())

			f.provider.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.operations.WithLabelValues(tt.operation, outcomePrecondition)))
		})
	}
}

// =============================================================================
// Initialize
// =============================================================================

func TestSequencer_Initialize(t *testing.T) {
	t.Run("성공 시 Ready", func(t *testing.T) {
		control := &mocks.MockControl{}
		f := initialized(t, control)

		snap := f.seq.Snapshot()
		assert.True(t, snap.Initialized)
		assert.Equal(t, ColorGreen, snap.Status.Color)
		assert.True(t, logContains(snap, "다음 단계: 5s~10s 기다린 뒤"))
		assert.Equal(t, []Status{StatusInitializing, StatusReady}, f.sink.statusSequence())

		f.provider.AssertExpectations(t)
	})

	t.Run("전달되는 설정", func(t *testing.T) {
		f := newFixture(t)
		control := &mocks.MockControl{}

		f.provider.On("Create", mock.Anything, registration.Settings{AppID: "6bb7df1b-6014-498a-ac2e-67abb63e4751"}, mock.MatchedBy(func(h registration.Hooks) bool {
			return h.OnReceived != nil && h.OnOpened != nil
		})).Return(control, nil).Once()
		f.provider.On("Register", mock.Anything, control).Return(nil).Once()

		require.NoError(t, f.seq.Initialize(context.Background()))
		f.provider.AssertExpectations(t)
	})

	t.Run("Create 실패 시 Error", func(t *testing.T) {
		f := newFixture(t)
		f.provider.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("invalid app id")).Once()

		require.NoError(t, f.seq.Initialize(context.Background()))

		snap := f.seq.Snapshot()
		assert.Equal(t, StatusError, snap.Status.Status)
		assert.Equal(t, ColorRed, snap.Status.Color)
		assert.Contains(t, snap.Status.Text, "invalid app id")
		assert.False(t, snap.Initialized)
		assert.True(t, logContains(snap, "invalid app id"))
		f.provider.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Register 실패 시 Error", func(t *testing.T) {
		f := newFixture(t)
		control := &mocks.MockControl{}
		f.provider.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(control, nil).Once()
		f.provider.On("Register", mock.Anything, control).Return(errors.New("backend down")).Once()

		require.NoError(t, f.seq.Initialize(context.Background()))

		snap := f.seq.Snapshot()
		assert.Equal(t, StatusError, snap.Status.Status)
		assert.False(t, snap.Initialized)
	})

	t.Run("재초기화 시 컨트롤 교체 및 기록 초기화", func(t *testing.T) {
		first := &mocks.MockControl{}
		first.On("DeviceID", mock.Anything).Return("abc123", true, nil).Once()
		f := initialized(t, first)

		require.NoError(t, f.seq.FetchIdentifier(context.Background()))
		require.True(t, f.seq.Snapshot().Record.DeviceID.IsPresent())

		second := &mocks.MockControl{}
		f.provider.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(second, nil).Once()
		f.provider.On("Register", mock.Anything, second).Return(nil).Once()

		require.NoError(t, f.seq.Initialize(context.Background()))

		snap := f.seq.Snapshot()
		assert.Equal(t, StatusReady, snap.Status.Status)
		assert.Equal(t, IdentifierUnknown, snap.Record.DeviceID.State)
		assert.True(t, logContains(snap, msgReplaced))
	})
}

// =============================================================================
// FetchIdentifier
// =============================================================================

func TestSequencer_FetchIdentifier(t *testing.T) {
	t.Run("식별자 존재", func(t *testing.T) {
		control := &mocks.MockControl{}
		control.On("DeviceID", mock.Anything).Return("abc123", true, nil).Once()
		f := initialized(t, control)

		require.NoError(t, f.seq.FetchIdentifier(context.Background()))

		snap := f.seq.Snapshot()
		assert.Equal(t, StatusRegistered, snap.Status.Status)
		assert.Equal(t, Identifier{State: IdentifierPresent, Value: "abc123"}, snap.Record.DeviceID)
		assert.True(t, logContains(snap, "abc123"))
		assert.Equal(t, []Status{StatusInitializing, StatusReady, StatusPending, StatusRegistered}, f.sink.statusSequence())
		control.AssertExpectations(t)
	})

	t.Run("식별자 없음", func(t *testing.T) {
		control := &mocks.MockControl{}
		control.On("DeviceID", mock.Anything).Return("", false, nil).Once()
		f := initialized(t, control)

		require.NoError(t, f.seq.FetchIdentifier(context.Background()))

		snap := f.seq.Snapshot()
		assert.Equal(t, StatusNotRegistered, snap.Status.Status)
		assert.Equal(t, ColorOrange, snap.Status.Color)
		assert.Equal(t, IdentifierNotSet, snap.Record.DeviceID.State)
		assert.Empty(t, snap.Record.DeviceID.Value)
		assert.Equal(t, "⏳ 아직 등록되지 않음: 5s 후 다시 시도하세요", snap.Status.Text)
		for _, cause := range notRegisteredCauses(5 * time.Second) {
			assert.True(t, logContains(snap, cause), cause)
		}
		assert.True(t, logContains(snap, fmt.Sprintf(msgFetchRetry, 5*time.Second)))

		// 자동 재시도 없음
		assert.Empty(t, f.sched.scheduled())
	})

	t.Run("안내 문구는 설정된 재조회 대기 시간을 따른다", func(t *testing.T) {
		provider := &mocks.MockProvider{}
		control := &mocks.MockControl{}
		provider.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(control, nil).Once()
		provider.On("Register", mock.Anything, control).Return(nil).Once()
		control.On("DeviceID", mock.Anything).Return("", false, nil).Once()

		seq := New(Options{
			Provider:     provider,
			Scheduler:    &fakeScheduler{},
			AppID:        "6bb7df1b-6014-498a-ac2e-67abb63e4751",
			RefetchDelay: 3 * time.Second,
			Metrics:      NewMetrics(prometheus.NewRegistry()),
		})
		t.Cleanup(func() { _ = seq.Close() })

		require.NoError(t, seq.Initialize(context.Background()))
		assert.True(t, logContains(seq.Snapshot(), "다음 단계: 3s~6s 기다린 뒤"))

		require.NoError(t, seq.FetchIdentifier(context.Background()))

		snap := seq.Snapshot()
		assert.Equal(t, StatusNotRegistered, snap.Status.Status)
		assert.Equal(t, "⏳ 아직 등록되지 않음: 3s 후 다시 시도하세요", snap.Status.Text)
		assert.True(t, logContains(snap, "(3s~6s 필요)"))
		assert.True(t, logContains(snap, "조치: 3s 더 기다린 뒤"))
		assert.False(t, logContains(snap, "5s"))
	})

	t.Run("빈 문자열은 값이 없는 것으로 처리", func(t *testing.T) {
		control := &mocks.MockControl{}
		control.On("DeviceID", mock.Anything).Return("", true, nil).Once()
		f := initialized(t, control)

		require.NoError(t, f.seq.FetchIdentifier(context.Background()))
		assert.Equal(t, IdentifierNotSet, f.seq.Snapshot().Record.DeviceID.State)
	})

	t.Run("오류", func(t *testing.T) {
		control := &mocks.MockControl{}
		control.On("DeviceID", mock.Anything).Return("", false, errors.New("timeout")).Once()
		f := initialized(t, control)

		require.NoError(t, f.seq.FetchIdentifier(context.Background()))

		snap := f.seq.Snapshot()
		assert.Equal(t, StatusError, snap.Status.Status)
		assert.Equal(t, IdentifierFailed, snap.Record.DeviceID.State)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.operations.WithLabelValues(opFetchIdentifier, outcomeError)))
	})
}

// =============================================================================
// LoginExternalUser
// =============================================================================

func TestSequencer_LoginExternalUser(t *testing.T) {
	tests := []struct {
		name      string
		confirmed bool
		want      Status
	}{
		{"확인됨", true, StatusLoggedIn},
		{"미확인", false, StatusLoginUnconfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			control := &mocks.MockControl{}
			control.On("Login", mock.Anything, "test_user_12345").Return(tt.confirmed, nil).Once()
			f := initialized(t, control)

			require.NoError(t, f.seq.LoginExternalUser(context.Background()))
			assert.Equal(t, tt.want, f.seq.Snapshot().Status.Status)

			tasks := f.sched.scheduled()
			require.Len(t, tasks, 1)
			assert.Equal(t, taskRefetch, tasks[0].name)
			assert.Equal(t, 5*time.Second, tasks[0].delay)

			// 지연 작업이 실행되면 기기 식별자를 한 번 조회한다.
			control.On("DeviceID", mock.Anything).Return("abc123", true, nil).Once()
			f.sched.fire(t, tasks[0])

			snap := f.seq.Snapshot()
			assert.Equal(t, StatusRegistered, snap.Status.Status)
			assert.Equal(t, "abc123", snap.Record.DeviceID.Value)
			assert.True(t, logContains(snap, msgAutoRefetch))
			assert.Len(t, f.sched.scheduled(), 1)
			control.AssertExpectations(t)
		})
	}

	t.Run("오류 시 예약 없음", func(t *testing.T) {
		control := &mocks.MockControl{}
		control.On("Login", mock.Anything, "test_user_12345").Return(false, errors.New("409 conflict")).Once()
		f := initialized(t, control)

		require.NoError(t, f.seq.LoginExternalUser(context.Background()))

		assert.Equal(t, StatusError, f.seq.Snapshot().Status.Status)
		assert.Empty(t, f.sched.scheduled())
	})
}

// =============================================================================
// CheckExternalUserID
// =============================================================================

func TestSequencer_CheckExternalUserID(t *testing.T) {
	t.Run("값 존재", func(t *testing.T) {
		control := &mocks.MockControl{}
		control.On("ExternalUserID", mock.Anything).Return("test_user_12345", true, nil).Once()
		f := initialized(t, control)

		require.NoError(t, f.seq.CheckExternalUserID(context.Background()))

		snap := f.seq.Snapshot()
		assert.Equal(t, presentIdentifier("test_user_12345"), snap.Record.ExternalUserID)
		assert.Equal(t, StatusReady, snap.Status.Status)
	})

	t.Run("값 없음은 NotSet", func(t *testing.T) {
		control := &mocks.MockControl{}
		control.On("ExternalUserID", mock.Anything).Return("", false, nil).Once()
		f := initialized(t, control)

		require.NoError(t, f.seq.CheckExternalUserID(context.Background()))

		snap := f.seq.Snapshot()
		assert.Equal(t, IdentifierNotSet, snap.Record.ExternalUserID.State)
		assert.NotEqual(t, presentIdentifier(""), snap.Record.ExternalUserID)
		assert.NotEqual(t, presentIdentifier("Not set"), snap.Record.ExternalUserID)
		assert.Equal(t, StatusReady, snap.Status.Status)
		assert.True(t, logContains(snap, msgCheckAbsent))
	})

	t.Run("오류", func(t *testing.T) {
		control := &mocks.MockControl{}
		control.On("ExternalUserID", mock.Anything).Return("", false, errors.New("not found")).Once()
		f := initialized(t, control)

		require.NoError(t, f.seq.CheckExternalUserID(context.Background()))

		snap := f.seq.Snapshot()
		assert.Equal(t, IdentifierFailed, snap.Record.ExternalUserID.State)
		assert.Equal(t, StatusError, snap.Status.Status)
	})
}

// =============================================================================
// AutoStart
// =============================================================================

func TestSequencer_AutoStart(t *testing.T) {
	f := newFixture(t)
	control := &mocks.MockControl{}
	f.provider.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(control, nil).Once()
	f.provider.On("Register", mock.Anything, control).Return(nil).Once()

	require.NoError(t, f.seq.AutoStart(context.Background()))
	require.NoError(t, f.seq.AutoStart(context.Background()))
	require.NoError(t, f.seq.AutoStart(context.Background()))

	tasks := f.sched.scheduled()
	require.Len(t, tasks, 1)
	assert.Equal(t, taskAutoStart, tasks[0].name)
	assert.Equal(t, 2*time.Second, tasks[0].delay)
	assert.True(t, logContains(f.seq.Snapshot(), msgAutoStartDuplicate))

	f.sched.fire(t, tasks[0])

	assert.Equal(t, StatusReady, f.seq.Snapshot().Status.Status)
	f.provider.AssertNumberOfCalls(t, "Create", 1)
}

// =============================================================================
// Events
// =============================================================================

func TestSequencer_DispatchEvent(t *testing.T) {
	received := registration.Event{Type: registration.EventReceived, NotificationID: "n-1", Title: "hello"}

	t.Run("초기화 전", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.seq.DispatchEvent(received), ErrNotInitialized)
	})

	t.Run("잘못된 이벤트 종류", func(t *testing.T) {
		f := newFixture(t)
		assert.Error(t, f.seq.DispatchEvent(registration.Event{Type: "clicked"}))
	})

	t.Run("이벤트 미지원 컨트롤", func(t *testing.T) {
		f := initialized(t, &mocks.MockControl{})
		assert.ErrorIs(t, f.seq.DispatchEvent(received), ErrEventsUnsupported)
	})

	t.Run("훅으로 전달", func(t *testing.T) {
		control := &mocks.MockEventControl{}
		control.On("Dispatch", received).Return(true).Once()
		f := initialized(t, control)

		require.NoError(t, f.seq.DispatchEvent(received))
		control.AssertExpectations(t)
	})

	t.Run("처리할 훅 없음", func(t *testing.T) {
		control := &mocks.MockEventControl{}
		control.On("Dispatch", received).Return(false).Once()
		f := initialized(t, control)

		assert.ErrorIs(t, f.seq.DispatchEvent(received), ErrNoEventHook)
	})
}

func TestSequencer_HooksAppendLog(t *testing.T) {
	f := newFixture(t)
	control := &mocks.MockControl{}

	var hooks registration.Hooks
	f.provider.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { hooks = args.Get(2).(registration.Hooks) }).
		Return(control, nil).Once()
	f.provider.On("Register", mock.Anything, control).Return(nil).Once()

	require.NoError(t, f.seq.Initialize(context.Background()))

	require.True(t, hooks.Dispatch(registration.Event{Type: registration.EventReceived, Title: "welcome"}))
	require.True(t, hooks.Dispatch(registration.Event{Type: registration.EventOpened, NotificationID: "n-9"}))

	snap := f.seq.Snapshot()
	assert.True(t, logContains(snap, "알림 수신: title=welcome"))
	assert.True(t, logContains(snap, "알림 열람: id=n-9"))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.events.WithLabelValues("received")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.events.WithLabelValues("opened")))
}

// =============================================================================
// Close
// =============================================================================

func TestSequencer_Close(t *testing.T) {
	control := &mocks.MockControl{}
	control.On("Login", mock.Anything, mock.Anything).Return(true, nil).Once()
	f := initialized(t, control)

	require.NoError(t, f.seq.LoginExternalUser(context.Background()))
	tasks := f.sched.scheduled()
	require.Len(t, tasks, 1)

	require.NoError(t, f.seq.Close())
	require.NoError(t, f.seq.Close())

	assert.True(t, tasks[0].canceled)
	assert.ErrorIs(t, f.seq.FetchIdentifier(context.Background()), ErrClosed)
	assert.ErrorIs(t, f.seq.Initialize(context.Background()), ErrClosed)
	assert.ErrorIs(t, f.seq.AutoStart(context.Background()), ErrClosed)
	control.AssertNotCalled(t, "DeviceID", mock.Anything)
}

func TestSequencer_Start_ClosesOnStop(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)

	require.NoError(t, f.seq.Start(ctx, wg))
	cancel()
	wg.Wait()

	assert.ErrorIs(t, f.seq.FetchIdentifier(context.Background()), ErrClosed)
}

// =============================================================================
// End-to-end with the real scheduler and simulated provider
// =============================================================================

func TestSequencer_SimulatedFlow(t *testing.T) {
	sched := scheduler.New()
	defer sched.Close()

	sink := &recordingSink{}
	seq := New(Options{
		Provider:           simulated.New(simulated.Options{Latency: 20 * time.Millisecond, DeviceID: "sim-device-1", ConfirmLogin: true}),
		Scheduler:          sched,
		AppID:              "app-id-for-test",
		TestExternalUserID: "test_user_12345",
		AutoStartDelay:     10 * time.Millisecond,
		RefetchDelay:       200 * time.Millisecond,
		Sinks:              []Sink{sink, NewConsoleSink()},
	})
	defer seq.Close()

	require.NoError(t, seq.AutoStart(context.Background()))
	require.Eventually(t, func() bool {
		return seq.Snapshot().Status.Status == StatusReady
	}, 2*time.Second, 5*time.Millisecond)

	// 등록 지연 시간이 지나면 식별자가 발급된다.
	require.Eventually(t, func() bool {
		_ = seq.FetchIdentifier(context.Background())
		return seq.Snapshot().Record.DeviceID.Value == "sim-device-1"
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, seq.LoginExternalUser(context.Background()))
	assert.Equal(t, StatusLoggedIn, seq.Snapshot().Status.Status)

	require.NoError(t, seq.CheckExternalUserID(context.Background()))
	assert.Equal(t, "test_user_12345", seq.Snapshot().Record.ExternalUserID.Value)

	require.NoError(t, seq.DispatchEvent(registration.Event{Type: registration.EventReceived, Title: "ping"}))
	assert.True(t, logContains(seq.Snapshot(), "ping"))

	// 로그인 후 예약된 재조회가 실행된다.
	require.Eventually(t, func() bool {
		return logContains(seq.Snapshot(), msgAutoRefetch)
	}, 2*time.Second, 5*time.Millisecond)
}
