package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hainweb/merchant-console/internal/productform"
	"github.com/hainweb/merchant-console/internal/session"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForm(t *testing.T, id, owner string) *productform.Form {
	t.Helper()
	f, err := productform.New(productform.Config{ID: id, Owner: owner, Mode: productform.ModeCreate})
	require.NoError(t, err)
	return f
}

func TestDraftRepositoryOwnership(t *testing.T) {
	ctx := context.Background()
	repo := CreateDraftRepository(time.Hour)

	f := newForm(t, "d-1", "s-1")
	require.NoError(t, repo.Save(ctx, f))

	got, err := repo.Get(ctx, "s-1", "d-1")
	require.NoError(t, err)
	assert.Same(t, f, got)

	_, err = repo.Get(ctx, "s-2", "d-1")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "s-2", "d-1"), errs.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "s-1", "d-1"))

	_, err = repo.Get(ctx, "s-1", "d-1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Eventually(t, func() bool {
		return errors.Is(f.RemoveThumbnail(), errs.ErrSubmissionClosed)
	}, time.Second, 10*time.Millisecond, "deleted drafts are closed")
}

func TestDraftRepositoryDeleteByOwner(t *testing.T) {
	ctx := context.Background()
	repo := CreateDraftRepository(time.Hour)

	require.NoError(t, repo.Save(ctx, newForm(t, "d-1", "s-1")))
	require.NoError(t, repo.Save(ctx, newForm(t, "d-2", "s-1")))
	require.NoError(t, repo.Save(ctx, newForm(t, "d-3", "s-2")))

	assert.Equal(t, 2, repo.DeleteByOwner(ctx, "s-1"))

	_, err := repo.Get(ctx, "s-1", "d-1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = repo.Get(ctx, "s-2", "d-3")
	assert.NoError(t, err)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := CreateSessionRepository(time.Hour)

	s, err := session.New()
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err = repo.Get(ctx, s.ID)
	assert.ErrorIs(t, err, errs.ErrNotLoggedIn)
	assert.Zero(t, repo.DeleteExpired(ctx))
}

func TestSessionRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	repo := CreateSessionRepository(20 * time.Millisecond)

	s, err := session.New()
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	time.Sleep(40 * time.Millisecond)
	_, err = repo.Get(ctx, s.ID)
	assert.ErrorIs(t, err, errs.ErrNotLoggedIn)
	assert.Zero(t, repo.DeleteExpired(ctx))
}
