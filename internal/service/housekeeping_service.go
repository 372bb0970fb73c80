package service

import (
	"context"

	"github.com/hainweb/merchant-console/internal/repository"
	"github.com/rs/zerolog/log"
)

type HousekeepingServiceImpl struct {
	sessions repository.SessionRepository
	drafts   repository.DraftRepository
}

func CreateHousekeepingService(sessions repository.SessionRepository, drafts repository.DraftRepository) HousekeepingService {
	return &HousekeepingServiceImpl{sessions: sessions, drafts: drafts}
}

// SweepExpired drops sessions and drafts that outlived their TTL. It runs
// on the scheduler.
func (s *HousekeepingServiceImpl) SweepExpired() {
	ctx := context.Background()

	sessions := s.sessions.DeleteExpired(ctx)
	drafts := s.drafts.DeleteExpired(ctx)
	log.Debug().Str("component", "SweepExpired").Int("live_sessions", sessions).Int("live_drafts", drafts).Msg("sweep done")
}
