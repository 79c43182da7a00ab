package service

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSKSLockerSerializesSameKey(t *testing.T) {
	l := newSKSLocker()
	lec, sem := uuid.New(), uuid.New()

	unlock := l.Lock(lec, sem)
	acquired := make(chan struct{})
	go func() {
		release := l.Lock(lec, sem)
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatalf("second Lock acquired while first was held")
	case <-time.After(20 * time.Millisecond):
	}
	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("second Lock never acquired")
	}
}

func TestSKSLockerIndependentKeys(t *testing.T) {
	l := newSKSLocker()
	lec := uuid.New()

	a := l.Lock(lec, uuid.New())
	b := l.Lock(lec, uuid.New())
	if l.size() != 2 {
		t.Fatalf("size = %d, want 2", l.size())
	}
	a()
	b()
	if l.size() != 0 {
		t.Fatalf("size = %d after release, want 0", l.size())
	}
}

func TestSKSLockerReleasesUnderContention(t *testing.T) {
	l := newSKSLocker()
	lec, sem := uuid.New(), uuid.New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(lec, sem)
			counter++
			unlock()
		}()
	}
	wg.Wait()
	if counter != 50 || l.size() != 0 {
		t.Fatalf("counter = %d, size = %d", counter, l.size())
	}
}
