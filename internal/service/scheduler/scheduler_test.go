package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAfterFunc_Runs(t *testing.T) {
	s := New()
	defer s.Close()

	done := make(chan struct{})
	s.AfterFunc("refetch", 10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("지연 작업이 실행되지 않았습니다")
	}

	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, time.Millisecond)
}

func TestAfterFunc_Cancel(t *testing.T) {
	s := New()
	defer s.Close()

	var ran atomic.Bool
	h := s.AfterFunc("auto-start", time.Hour, func() { ran.Store(true) })

	assert.Equal(t, 1, s.Pending())
	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel(), "두 번째 취소는 false")
	assert.Zero(t, s.Pending())
	assert.False(t, ran.Load())
}

func TestAfterFunc_PanicRecovered(t *testing.T) {
	s := New()

	done := make(chan struct{})
	s.AfterFunc("boom", 0, func() {
		defer close(done)
		panic("boom")
	})
	<-done

	s.Close()
}

func TestClose_CancelsPendingAndWaitsRunning(t *testing.T) {
	s := New()

	var ran atomic.Bool
	s.AfterFunc("later", time.Hour, func() { ran.Store(true) })

	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	s.AfterFunc("running", 0, func() {
		close(started)
		<-release
		finished.Store(true)
	})
	<-started

	closed := make(chan struct{})
	go func() {
		s.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("실행 중인 작업이 끝나기 전에 Close가 반환되었습니다")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-closed

	assert.True(t, finished.Load())
	assert.False(t, ran.Load())
	assert.Zero(t, s.Pending())

	// 종료 후 등록은 무시된다.
	h := s.AfterFunc("ignored", 0, func() { ran.Store(true) })
	assert.False(t, h.Cancel())
	time.Sleep(10 * time.Millisecond)
	assert.False(t, ran.Load())

	s.Close()
}

func TestAddWatch(t *testing.T) {
	s := New()

	err := s.AddWatch("device-id", "*/5 * * * *", func() {})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))

	var calls atomic.Int32
	require.NoError(t, s.AddWatch("device-id", "@every 1s", func() { calls.Add(1) }))

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 10*time.Millisecond)

	cancel()
	wg.Wait()
}

func TestStart_Duplicate(t *testing.T) {
	s := New()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	cancel()
	wg.Wait()
}
