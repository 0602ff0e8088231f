package syncqueue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shenikar/fyren/internal/models"
	"github.com/sirupsen/logrus"
)

var ErrSchedulerStopped = errors.New("sync scheduler stopped")

// TimerScheduler откладывает задачи таймерами внутри процесса.
// Незавершенные задачи теряются при остановке, инцидент остается в pending_sync.
type TimerScheduler struct {
	dispatcher *Dispatcher
	logger     *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	nextID  uint64
	timers  map[uint64]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func NewTimerScheduler(dispatcher *Dispatcher, logger *logrus.Logger) *TimerScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &TimerScheduler{
		dispatcher: dispatcher,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		timers:     make(map[uint64]*time.Timer),
	}
}

// Schedule запускает таймер до task.DueAt. Контекст запроса не используется
// для отложенного вызова: он завершится раньше таймера.
func (s *TimerScheduler) Schedule(_ context.Context, task models.SyncTask) error {
	delay := time.Until(task.DueAt)
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}

	id := s.nextID
	s.nextID++
	s.wg.Add(1)
	s.timers[id] = time.AfterFunc(delay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()

		if err := s.dispatcher.Dispatch(s.ctx, task); err != nil {
			s.logger.WithError(err).WithField("incident_id", task.IncidentID).Error("Sync task failed")
		}
	})
	return nil
}

// Stop отменяет ожидающие таймеры и ждет завершения уже сработавших
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for id, timer := range s.timers {
		if timer.Stop() {
			s.wg.Done()
		}
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	s.logger.Info("Sync scheduler stopped")
}
