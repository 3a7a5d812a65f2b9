package ui

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerSingleCall(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("expected 1 call, got %d", called)
	}
}

func TestDebouncerRapidCallsCoalesce(t *testing.T) {
	var called int32
	var lastValue int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	for i := 1; i <= 10; i++ {
		value := int32(i)
		debouncer.Debounce(func() {
			atomic.StoreInt32(&lastValue, value)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("expected 1 call for rapid succession, got %d", called)
	}
	if atomic.LoadInt32(&lastValue) != 10 {
		t.Errorf("expected last value 10, got %d", lastValue)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})
	debouncer.Cancel()

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 0 {
		t.Errorf("cancelled call should not run, got %d calls", called)
	}
}

func TestDebouncerImmediate(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(time.Hour)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 100)
	})
	debouncer.Immediate(func() {
		atomic.AddInt32(&called, 1)
	})

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("immediate call should run once and cancel pending, got %d", called)
	}
}
