package store

import (
	"context"
	"errors"
	"time"

	"github.com/lessongenie/web/internal/controller"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by Update when concurrent writers kept
	// changing the session until the retries ran out.
	ErrConflict = errors.New("concurrent update")
)

// UpdateFunc changes a loaded session. Returning an error aborts the update
// without saving. It may run more than once when another writer wins.
type UpdateFunc func(*controller.Session) error

// Store keeps one controller.Session per browser session.
// Implementations return copies: mutating a returned session has no
// effect until it is passed to Save.
type Store interface {
	Get(ctx context.Context, id string) (*controller.Session, error)
	Save(ctx context.Context, s *controller.Session) error
	// Update loads the session, applies fn and saves the result as one
	// atomic step, even across instances sharing the store.
	Update(ctx context.Context, id string, fn UpdateFunc) (*controller.Session, error)
	Delete(ctx context.Context, id string) error
	// Purge drops sessions not saved since before cutoff and returns how many.
	Purge(ctx context.Context, cutoff time.Time) (int, error)
	Close() error
}
