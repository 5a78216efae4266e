// internal/service/lesson.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lessongenie/web/internal/controller"
	"github.com/lessongenie/web/internal/domain/pdffile"
	"github.com/lessongenie/web/internal/id"
	"github.com/lessongenie/web/internal/metrics"
	"github.com/lessongenie/web/internal/store"
	"github.com/lessongenie/web/internal/worker"
)

var errStale = errors.New("stale outcome")

// Recorder receives transition counters. *metrics.Metrics satisfies it.
type Recorder interface {
	TransitionStarted()
	TransitionFinished(transition, outcome string)
	TransitionRejected(transition string)
}

type nopRecorder struct{}

func (nopRecorder) TransitionStarted()                {}
func (nopRecorder) TransitionFinished(string, string) {}
func (nopRecorder) TransitionRejected(string)         {}

// LessonService runs session transitions. The begin step happens inside the
// caller's request; the backend call runs on the worker pool and its outcome
// is applied to the stored session afterwards.
type LessonService struct {
	store    store.Store
	ctrl     *controller.Controller
	pool     *worker.Pool[controller.Outcome]
	logger   *slog.Logger
	recorder Recorder

	locks *keyedMutex

	mu      sync.RWMutex
	pending map[string]*inflight // sessionID → queued transitions

	// ctx bounds backend calls; Shutdown cancels it.
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type inflight struct {
	wg sync.WaitGroup
	n  int
}

// NewLessonService starts draining pool results. Close or Shutdown must be
// called to stop it.
func NewLessonService(
	s store.Store,
	c *controller.Controller,
	pool *worker.Pool[controller.Outcome],
	logger *slog.Logger,
	recorder Recorder,
) *LessonService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	ls := &LessonService{
		store:    s,
		ctrl:     c,
		pool:     pool,
		logger:   logger,
		recorder: recorder,
		locks:    newKeyedMutex(),
		pending:  make(map[string]*inflight),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go ls.drain()
	return ls
}

// ============================================================================
// Session lifecycle
// ============================================================================

// Session returns the stored session for id. An empty or unknown id gets a
// fresh session with a new id, already saved.
func (ls *LessonService) Session(ctx context.Context, sessionID string) (*controller.Session, error) {
	if sessionID != "" {
		sess, err := ls.store.Get(ctx, sessionID)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("load session: %w", err)
		}
	}

	sess := controller.NewSession(id.New())
	if err := ls.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// View returns the render model of the session.
func (ls *LessonService) View(ctx context.Context, id string) (controller.View, error) {
	sess, err := ls.store.Get(ctx, id)
	if err != nil {
		return controller.View{}, err
	}
	return ls.ctrl.View(sess), nil
}

// ============================================================================
// Transitions
// ============================================================================

// Upload validates f and queues question extraction. Validation errors are
// recorded on the session and also returned.
func (ls *LessonService) Upload(ctx context.Context, id string, f *pdffile.File) error {
	return ls.transition(ctx, id, controller.TransitionExtract, func(sess *controller.Session) (*controller.Pending, error) {
		if sess.Busy {
			return nil, controller.ErrBusy
		}
		if err := ls.ctrl.SelectFile(sess, f); err != nil {
			return nil, err
		}
		return ls.ctrl.BeginUpload(sess, f)
	})
}

// RejectUpload records an upload the handler could not read, such as one
// over the size limit, on the upload form.
func (ls *LessonService) RejectUpload(ctx context.Context, id string, cause error) error {
	_, err := ls.begin(ctx, id, controller.TransitionExtract, func(sess *controller.Session) (*controller.Pending, error) {
		return nil, ls.ctrl.RejectUpload(sess, cause)
	})
	return err
}

// Select queues lesson generation for the clicked row.
func (ls *LessonService) Select(ctx context.Context, id, questionID, questionText string) error {
	return ls.transition(ctx, id, controller.TransitionLesson, func(sess *controller.Session) (*controller.Pending, error) {
		return ls.ctrl.BeginSelect(sess, questionID, questionText)
	})
}

// Back returns from the lesson to the cached question list.
func (ls *LessonService) Back(ctx context.Context, id string) error {
	return ls.mutate(ctx, id, ls.ctrl.BackToQuestions)
}

// Reset returns the session to the Upload screen. An in-flight outcome for
// it will be discarded when it arrives.
func (ls *LessonService) Reset(ctx context.Context, id string) error {
	return ls.mutate(ctx, id, func(sess *controller.Session) error {
		ls.ctrl.Reset(sess)
		return nil
	})
}

// WaitForSession blocks until every queued transition of the session has
// been applied.
func (ls *LessonService) WaitForSession(sessionID string) {
	ls.mu.RLock()
	f, ok := ls.pending[sessionID]
	ls.mu.RUnlock()

	if ok {
		f.wg.Wait()
	}
}

// Close waits for queued transitions to finish and stops the service.
func (ls *LessonService) Close() {
	ls.pool.Close()
	<-ls.done
	ls.cancel()
}

// Shutdown stops accepting transitions and waits for queued ones to be
// applied. When ctx ends first, running backend calls are cancelled and
// their failures applied before Shutdown returns ctx.Err().
func (ls *LessonService) Shutdown(ctx context.Context) error {
	go ls.pool.Close()

	select {
	case <-ls.done:
		ls.cancel()
		return nil
	case <-ctx.Done():
	}

	ls.logger.Warn("cancelling in-flight transitions")
	ls.cancel()
	<-ls.done
	return ctx.Err()
}

func (ls *LessonService) mutate(ctx context.Context, id string, fn store.UpdateFunc) error {
	unlock := ls.locks.Lock(id)
	defer unlock()

	_, err := ls.store.Update(ctx, id, fn)
	return err
}

func (ls *LessonService) transition(
	ctx context.Context,
	id string,
	kind controller.Transition,
	begin func(*controller.Session) (*controller.Pending, error),
) error {
	p, err := ls.begin(ctx, id, kind, begin)
	if err != nil {
		return err
	}

	ls.track(id)
	ls.recorder.TransitionStarted()

	// Submitted outside the session lock: a full queue must not block the
	// drain goroutine applying an older outcome of the same session.
	// The request context ends with the redirect; the backend call is bound
	// to the service instead.
	err = ls.pool.Submit(id, func() controller.Outcome {
		return ls.ctrl.Run(ls.ctx, p)
	})
	if err == nil {
		ls.logger.Info("transition queued",
			"session_id", id,
			"transition", kind,
			"generation", p.Generation,
		)
		return nil
	}

	ls.logger.Error("failed to queue transition",
		"session_id", id,
		"transition", kind,
		"error", err,
	)
	ls.apply(controller.Outcome{
		Transition: p.Transition,
		SessionID:  p.SessionID,
		Generation: p.Generation,
		Err:        err,
	})
	return nil
}

// begin runs the synchronous half of a transition as one store update and
// saves the result, including any validation message.
func (ls *LessonService) begin(
	ctx context.Context,
	id string,
	kind controller.Transition,
	begin func(*controller.Session) (*controller.Pending, error),
) (*controller.Pending, error) {
	unlock := ls.locks.Lock(id)
	defer unlock()

	var (
		p        *controller.Pending
		beginErr error
	)
	_, err := ls.store.Update(ctx, id, func(sess *controller.Session) error {
		p, beginErr = begin(sess)
		var verr *controller.ValidationError
		if beginErr != nil && !errors.As(beginErr, &verr) {
			return beginErr
		}
		return nil
	})

	if beginErr != nil {
		ls.recorder.TransitionRejected(string(kind))
		if err != nil && !errors.Is(err, beginErr) {
			return nil, err
		}
		return nil, beginErr
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (ls *LessonService) track(sessionID string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	f, ok := ls.pending[sessionID]
	if !ok {
		f = &inflight{}
		ls.pending[sessionID] = f
	}
	f.n++
	f.wg.Add(1)
}

// untrack drops the entry with its last transition so finished sessions do
// not accumulate.
func (ls *LessonService) untrack(sessionID string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	f, ok := ls.pending[sessionID]
	if !ok {
		return
	}
	f.n--
	if f.n == 0 {
		delete(ls.pending, sessionID)
	}
	f.wg.Done()
}

// ============================================================================
// Resolution
// ============================================================================

func (ls *LessonService) drain() {
	defer close(ls.done)
	for res := range ls.pool.Results() {
		ls.apply(res.Output)
	}
}

// apply uses context.Background because it runs after the originating
// request has ended.
func (ls *LessonService) apply(o controller.Outcome) {
	ctx := context.Background()
	defer ls.untrack(o.SessionID)

	unlock := ls.locks.Lock(o.SessionID)
	defer unlock()

	_, err := ls.store.Update(ctx, o.SessionID, func(sess *controller.Session) error {
		if !ls.ctrl.Apply(sess, o) {
			return errStale
		}
		return nil
	})

	switch {
	case errors.Is(err, errStale):
		ls.recorder.TransitionFinished(string(o.Transition), metrics.OutcomeDiscarded)
		ls.logger.Info("stale outcome discarded",
			"session_id", o.SessionID,
			"transition", o.Transition,
			"generation", o.Generation,
		)
	case err != nil:
		ls.recorder.TransitionFinished(string(o.Transition), metrics.OutcomeDiscarded)
		ls.logger.Warn("outcome dropped",
			"session_id", o.SessionID,
			"transition", o.Transition,
			"error", err,
		)
	case o.Err != nil:
		ls.recorder.TransitionFinished(string(o.Transition), metrics.OutcomeError)
		ls.logger.Error("transition failed",
			"session_id", o.SessionID,
			"transition", o.Transition,
			"error", o.Err,
		)
	default:
		ls.recorder.TransitionFinished(string(o.Transition), metrics.OutcomeOK)
		ls.logger.Info("transition applied",
			"session_id", o.SessionID,
			"transition", o.Transition,
		)
	}
}
