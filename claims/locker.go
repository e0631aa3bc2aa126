package claims

import (
	"context"
	"sync"

	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
)

// Locker serialises claims for one (ORCID iD, credit type). Lock does not wait:
// a held key fails with ErrClaimInProgress.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// MemoryLocker only protects claims handled by this process.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]struct{})}
}

func (l *MemoryLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, apperrors.Wrapf(apperrors.ErrClaimInProgress, "%s", key)
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
