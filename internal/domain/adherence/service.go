package adherence

import (
	"context"
	"time"

	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/platform/dates"
)

// HistorySource trae el historial de dosis de un usuario.
// doses.Repository lo satisface.
type HistorySource interface {
	ListByUser(ctx context.Context, userID string, f doses.ListFilter) ([]doses.DoseSchedule, error)
}

type Service struct {
	history HistorySource
	now     func() time.Time
}

func NewService(history HistorySource) *Service {
	return &Service{
		history: history,
		now:     time.Now,
	}
}

func (s *Service) Stats(ctx context.Context, userID string, start, end time.Time) (Stats, error) {
	records, err := s.load(ctx, userID, start, end)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(records, dates.Day(s.now().UTC())), nil
}

func (s *Service) Daily(ctx context.Context, userID string, start, end time.Time) ([]Day, error) {
	records, err := s.load(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return ComputeDaily(records, start, end), nil
}

func (s *Service) load(ctx context.Context, userID string, start, end time.Time) ([]doses.DoseSchedule, error) {
	start, end, err := doses.CheckRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.history.ListByUser(ctx, userID, doses.ListFilter{From: &start, To: &end})
}
