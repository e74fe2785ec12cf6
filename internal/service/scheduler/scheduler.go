// Package scheduler 지연 실행 작업과 주기 실행 작업(Cron)을 관리합니다.
//
// 지연 작업은 취소 가능한 핸들을 반환하며, 스케줄러가 종료되면 대기 중인 작업은 모두
// 취소되고 실행 중인 작업은 완료될 때까지 기다립니다.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/push-probe/pkg/cronx"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/robfig/cron/v3"
)

const component = "scheduler.service"

// Cancelable 예약된 작업을 취소합니다. 아직 실행되지 않은 작업을 취소했으면 true를 반환합니다.
type Cancelable interface {
	Cancel() bool
}

// Scheduler 지연 작업과 Cron 작업을 실행하는 서비스입니다.
type Scheduler struct {
	mu      sync.Mutex
	closed  bool
	nextID  uint64
	pending map[uint64]*delayedTask

	// 예약 시점부터 실행 완료(또는 취소)까지 추적한다.
	inflight sync.WaitGroup

	cron    *cron.Cron
	running bool
}

// New 새 Scheduler를 생성합니다. 지연 작업은 Start 이전에도 등록할 수 있습니다.
func New() *Scheduler {
	logger := cron.VerbosePrintfLogger(applog.StandardLogger())

	return &Scheduler{
		pending: make(map[uint64]*delayedTask),
		cron: cron.New(
			cron.WithParser(cronx.StandardParser()),
			cron.WithLogger(logger),
			cron.WithChain(
				cron.Recover(logger),
				cron.SkipIfStillRunning(logger),
			),
		),
	}
}

// AfterFunc d 이후에 fn을 한 번 실행하도록 예약합니다.
// 스케줄러가 이미 종료되었으면 fn은 실행되지 않으며, 반환된 핸들의 Cancel은 false를 반환합니다.
func (s *Scheduler) AfterFunc(name string, d time.Duration, fn func()) Cancelable {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		applog.WithComponentAndFields(component, applog.Fields{
			"task": name,
		}).Warn("종료된 스케줄러에 지연 작업 등록 요청: 무시합니다")

		return &delayedTask{}
	}

	s.nextID++
	t := &delayedTask{id: s.nextID, name: name, owner: s}
	s.pending[t.id] = t
	s.inflight.Add(1)

	t.timer = time.AfterFunc(d, func() {
		if !s.take(t.id) {
			return
		}
		defer s.inflight.Done()

		defer func() {
			if r := recover(); r != nil {
				applog.WithComponentAndFields(component, applog.Fields{
					"task":  name,
					"panic": r,
				}).Error("지연 작업 실행 중 panic 발생")
			}
		}()

		fn()
	})

	applog.WithComponentAndFields(component, applog.Fields{
		"task":  name,
		"delay": d.String(),
	}).Debug("지연 작업 예약")

	return t
}

// take 실행 또는 취소를 위해 대기 목록에서 작업을 꺼냅니다. 이미 꺼내졌으면 false입니다.
func (s *Scheduler) take(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; !ok {
		return false
	}
	delete(s.pending, id)

	return true
}

// Pending 실행 대기 중인 지연 작업 수를 반환합니다.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.pending)
}

// AddWatch timeSpec(초 단위 6필드 또는 @every 등)에 따라 fn을 주기적으로 실행합니다.
func (s *Scheduler) AddWatch(name, timeSpec string, fn func()) error {
	if _, err := s.cron.AddFunc(timeSpec, fn); err != nil {
		return NewErrInvalidCronSpec(name, timeSpec, err)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"watch":     name,
		"time_spec": timeSpec,
	}).Info("주기 작업 등록")

	return nil
}

// Start Cron 엔진을 시작하고, serviceStopCtx가 취소되면 Close를 호출합니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.mu.Lock()
	if s.running || s.closed {
		s.mu.Unlock()
		serviceStopWG.Done()

		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중이거나 종료되었습니다 (중복 호출)")
		return nil
	}
	s.running = true
	s.mu.Unlock()

	s.cron.Start()

	applog.WithComponentAndFields(component, applog.Fields{
		"registered_watches": len(s.cron.Entries()),
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Close()
	}()

	return nil
}

// Close 대기 중인 지연 작업을 모두 취소하고, 실행 중인 작업과 Cron 작업이 끝날 때까지 기다립니다.
// 여러 번 호출해도 안전합니다.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true

	canceled := 0
	for id, t := range s.pending {
		// 이미 발화했지만 아직 take 전인 작업도 take에서 false를 받으므로 여기서 정리한다.
		if t.timer.Stop() {
			canceled++
		}
		delete(s.pending, id)
		s.inflight.Done()
	}
	running := s.running
	s.mu.Unlock()

	if running {
		<-s.cron.Stop().Done()
	}
	s.inflight.Wait()

	applog.WithComponentAndFields(component, applog.Fields{
		"canceled_tasks": canceled,
	}).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// delayedTask AfterFunc가 반환하는 취소 핸들입니다.
type delayedTask struct {
	id    uint64
	name  string
	owner *Scheduler
	timer *time.Timer
}

func (t *delayedTask) Cancel() bool {
	if t.owner == nil {
		return false
	}

	if !t.owner.take(t.id) {
		return false
	}

	t.timer.Stop()
	t.owner.inflight.Done()

	applog.WithComponentAndFields(component, applog.Fields{
		"task": t.name,
	}).Debug("지연 작업 취소")

	return true
}
