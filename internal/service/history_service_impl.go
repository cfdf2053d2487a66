package service

import (
	"context"
	"errors"

	"github.com/rsoares/grit/internal/contract"
	"github.com/rsoares/grit/internal/domain"
	"github.com/rsoares/grit/internal/repository"
)

type historyService struct {
	sessions repository.SessionRepo
	sets     repository.SetRepo
	programs repository.ProgramRepo
}

// NewHistoryService creates the completed-session query service.
func NewHistoryService(sessions repository.SessionRepo, sets repository.SetRepo, programs repository.ProgramRepo) HistoryService {
	return &historyService{sessions: sessions, sets: sets, programs: programs}
}

func (s *historyService) PreviousSet(ctx context.Context, exerciseID string, slot int, excludeSessionID string) (*domain.Set, error) {
	set, err := s.sets.PreviousAtSlot(ctx, exerciseID, slot, excludeSessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return set, nil
}

func (s *historyService) RecentHistory(ctx context.Context, exerciseID string, limit int) ([]contract.HistoryEntry, error) {
	sessions, err := s.sessions.RecentCompletedForExercise(ctx, exerciseID, limit)
	if err != nil {
		return nil, err
	}
	var entries []contract.HistoryEntry
	for _, sess := range sessions {
		logged, serr := s.sets.ListBySessionAndExercise(ctx, sess.ID, exerciseID)
		if serr != nil {
			return nil, serr
		}
		if len(logged) == 0 {
			continue
		}
		block, serr := s.programs.GetBlock(ctx, sess.BlockID)
		if serr != nil {
			return nil, serr
		}
		program, serr := s.programs.GetByID(ctx, block.ProgramID)
		if serr != nil {
			return nil, serr
		}
		entries = append(entries, contract.HistoryEntry{
			SessionDate: sess.StartedAt,
			Program:     program.Name,
			Block:       block.Name,
			Sets:        setViews(logged),
		})
	}
	return entries, nil
}
