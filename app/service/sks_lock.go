package service

import (
	"sync"

	"github.com/google/uuid"
)

// sksLocker menyerialkan tulis perkuliahan per (dosen, semester) di dalam satu
// proses. Kunci baris di database tetap dipakai untuk antar-proses.
type sksLocker struct {
	mu    sync.Mutex
	locks map[sksKey]*sksLock
}

type sksKey struct {
	lecturerID uuid.UUID
	semesterID uuid.UUID
}

type sksLock struct {
	mu   sync.Mutex
	refs int
}

func newSKSLocker() *sksLocker {
	return &sksLocker{locks: make(map[sksKey]*sksLock)}
}

// Lock mengambil kunci dan mengembalikan fungsi pelepasnya.
func (l *sksLocker) Lock(lecturerID, semesterID uuid.UUID) (unlock func()) {
	key := sksKey{lecturerID, semesterID}

	l.mu.Lock()
	lk, ok := l.locks[key]
	if !ok {
		lk = &sksLock{}
		l.locks[key] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.mu.Lock()
	return func() {
		lk.mu.Unlock()

		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *sksLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
