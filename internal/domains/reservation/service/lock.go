package service

import (
	"fmt"
	"sync"
	"time"
)

// slotLock serializes admission per (field, date). Holding the lock across the
// conflict check and the insert closes the window where two writers both read
// "free" and both insert; only same-field same-day requests contend, so
// unrelated bookings stay concurrent.
type slotLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSlotLock() *slotLock {
	return &slotLock{
		locks: map[string]*sync.Mutex{},
	}
}

func (l *slotLock) key(fieldID string, date time.Time) string {
	return fmt.Sprintf("%s:%s", fieldID, date.Format("2006-01-02"))
}

// Lock acquires the mutex for the given field and date, creating it on first
// use. Entries are never reclaimed; the map grows with the number of distinct
// (field, date) pairs seen, which is bounded by catalog size times days served.
func (l *slotLock) Lock(fieldID string, date time.Time) *sync.Mutex {
	key := l.key(fieldID, date)

	l.mu.Lock()
	mutex, ok := l.locks[key]
	if !ok {
		mutex = &sync.Mutex{}
		l.locks[key] = mutex
	}
	l.mu.Unlock()

	mutex.Lock()

	return mutex
}
