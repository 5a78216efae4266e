package worker_test

import (
	"errors"
	"sort"
	"strconv"
	"testing"

	"github.com/lessongenie/web/internal/worker"
)

func TestPool_RunsEveryJob(t *testing.T) {
	pool := worker.NewPool[int](3, 10)

	for i := 0; i < 10; i++ {
		n := i
		if err := pool.Submit(strconv.Itoa(n), func() int { return n * n }); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	var got []int
	for i := 0; i < 10; i++ {
		got = append(got, (<-pool.Results()).Output)
	}
	pool.Close()

	sort.Ints(got)
	for i, v := range got {
		if v != i*i {
			t.Errorf("expected %d at %d, got %d", i*i, i, v)
		}
	}
}

func TestPool_ResultCarriesJobID(t *testing.T) {
	pool := worker.NewPool[string](1, 1)
	defer pool.Close()

	if err := pool.Submit("session-1", func() string { return "done" }); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	res := <-pool.Results()
	if res.JobID != "session-1" || res.Output != "done" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestPool_SubmitAfterClose(t *testing.T) {
	pool := worker.NewPool[int](2, 2)
	pool.Close()

	if err := pool.Submit("x", func() int { return 1 }); !errors.Is(err, worker.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	if _, ok := <-pool.Results(); ok {
		t.Error("expected results channel to be closed")
	}

	// Closing twice is harmless.
	pool.Close()
}
