package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestGetOrCompute_ComputesOnce(t *testing.T) {
	c := New[float64]()
	var calls int32

	compute := func() (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 42.5, nil
	}

	// Hammer one key from many goroutines; the value must be computed
	// exactly once
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrCompute("2025-8-passing", compute)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if v != 42.5 {
				t.Errorf("Expected 42.5, got %.2f", v)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected 1 computation, got %d", got)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestGetOrCompute_ErrorsNotCached(t *testing.T) {
	c := New[int]()
	var calls int

	failing := errors.New("store down")
	_, err := c.GetOrCompute("k", func() (int, error) {
		calls++
		return 0, failing
	})
	if err == nil {
		t.Fatal("Expected error")
	}

	// Next call retries the computation
	v, err := c.GetOrCompute("k", func() (int, error) {
		calls++
		return 7, nil
	})
	if err != nil || v != 7 {
		t.Errorf("Retry failed: v=%d err=%v", v, err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

func TestPeek(t *testing.T) {
	c := New[string]()
	if _, ok := c.Peek("missing"); ok {
		t.Error("Peek must not report missing keys")
	}
	c.GetOrCompute("k", func() (string, error) { return "v", nil })
	if v, ok := c.Peek("k"); !ok || v != "v" {
		t.Errorf("Peek failed: %q %v", v, ok)
	}
}
