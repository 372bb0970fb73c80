package repository

import (
	"context"
	"time"

	"github.com/hainweb/merchant-console/internal/productform"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/jellydator/ttlcache/v3"
)

// DraftRepositoryImpl keeps product forms in memory. Evicted forms are
// closed so their previews are released.
type DraftRepositoryImpl struct {
	store *ttlcache.Cache[string, *productform.Form]
}

func CreateDraftRepository(ttl time.Duration) DraftRepository {
	return &DraftRepositoryImpl{
		store: newMemoryStore(ttl, func(f *productform.Form) { f.Close() }),
	}
}

func (r *DraftRepositoryImpl) Save(ctx context.Context, form *productform.Form) error {
	r.store.Set(form.ID(), form, ttlcache.DefaultTTL)
	return nil
}

func (r *DraftRepositoryImpl) Get(ctx context.Context, owner, id string) (*productform.Form, error) {
	item := r.store.Get(id)
	if item == nil || item.Value().Owner() != owner {
		return nil, errs.ErrNotFound
	}
	return item.Value(), nil
}

func (r *DraftRepositoryImpl) Delete(ctx context.Context, owner, id string) error {
	if _, err := r.Get(ctx, owner, id); err != nil {
		return err
	}
	r.store.Delete(id)
	return nil
}

func (r *DraftRepositoryImpl) DeleteByOwner(ctx context.Context, owner string) int {
	removed := 0
	for id, item := range r.store.Items() {
		if item.Value().Owner() == owner {
			r.store.Delete(id)
			removed++
		}
	}
	return removed
}

func (r *DraftRepositoryImpl) DeleteExpired(ctx context.Context) int {
	return deleteExpired(r.store)
}
