// Package lockout отслеживает неудачные попытки входа и временно блокирует ключ
// после достижения порога.
package lockout

import (
	"sync"
	"time"
)

type entry struct {
	failures    int
	lastFailure time.Time
	lockedUntil time.Time
}

// Tracker хранит счетчики только в памяти процесса: после перезапуска они обнуляются
type Tracker struct {
	mu          sync.Mutex
	maxAttempts int
	duration    time.Duration
	now         func() time.Time
	entries     map[string]*entry
}

func NewTracker(maxAttempts int, duration time.Duration) *Tracker {
	return &Tracker{
		maxAttempts: maxAttempts,
		duration:    duration,
		now:         time.Now,
		entries:     make(map[string]*entry),
	}
}

// WithClock подменяет источник времени
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Remaining возвращает оставшееся время блокировки или 0
func (t *Tracker) Remaining(key string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok || e.lockedUntil.IsZero() {
		return 0
	}

	left := e.lockedUntil.Sub(t.now())
	if left <= 0 {
		// Блокировка истекла - начинаем отсчет попыток заново
		delete(t.entries, key)
		return 0
	}
	return left
}

// Fail регистрирует неудачную попытку. Если попытка исчерпала лимит,
// ключ блокируется и возвращается длительность блокировки.
func (t *Tracker) Fail(key string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	e, ok := t.entries[key]
	if !ok {
		t.prune(now)
		e = &entry{}
		t.entries[key] = e
	}

	e.failures++
	e.lastFailure = now
	if e.failures >= t.maxAttempts {
		e.failures = 0
		e.lockedUntil = now.Add(t.duration)
		return t.duration
	}
	return 0
}

// Reset сбрасывает счетчик после успешного входа
func (t *Tracker) Reset(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, key)
}

// prune удаляет истекшие блокировки и счетчики, не пополнявшиеся дольше длительности блокировки
func (t *Tracker) prune(now time.Time) {
	for key, e := range t.entries {
		if !e.lockedUntil.IsZero() {
			if !now.Before(e.lockedUntil) {
				delete(t.entries, key)
			}
			continue
		}
		if now.Sub(e.lastFailure) > t.duration {
			delete(t.entries, key)
		}
	}
}

// Len возвращает число отслеживаемых ключей
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
