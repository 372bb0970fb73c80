package repository

import (
	"context"
	"time"

	"github.com/hainweb/merchant-console/internal/session"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/jellydator/ttlcache/v3"
)

type SessionRepositoryImpl struct {
	store *ttlcache.Cache[string, *session.Session]
}

func CreateSessionRepository(ttl time.Duration) SessionRepository {
	return &SessionRepositoryImpl{store: newMemoryStore[*session.Session](ttl, nil)}
}

func (r *SessionRepositoryImpl) Save(ctx context.Context, s *session.Session) error {
	r.store.Set(s.ID, s, ttlcache.DefaultTTL)
	return nil
}

func (r *SessionRepositoryImpl) Get(ctx context.Context, id string) (*session.Session, error) {
	item := r.store.Get(id)
	if item == nil {
		return nil, errs.ErrNotLoggedIn
	}
	return item.Value(), nil
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.store.Delete(id)
	return nil
}

func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context) int {
	return deleteExpired(r.store)
}
