// Package preference provides the application layer for learned-preference
// accumulation. One service instance is shared by ingredient substitution and
// appliance adaptation; both address records by an (original, alternative)
// pair.
package preference

import (
	"context"
	"sync"
	"time"

	"github.com/cocinero/v1/internal/domain/preference"
	"github.com/cocinero/v1/internal/ports/inbound"
	"github.com/cocinero/v1/internal/ports/outbound"
	"github.com/cocinero/v1/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the preference-store use cases
type Service struct {
	repo   outbound.PreferenceRepository
	logger *zap.Logger
	now    func() time.Time

	// Per-pair locks serialize the read-modify-write of RecordUsage;
	// concurrent updates on the same pair would otherwise lose counts.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new preference service
func NewService(repo outbound.PreferenceRepository, logger *zap.Logger) inbound.PreferenceService {
	return &Service{
		repo:   repo,
		logger: logger.Named("preference-service"),
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

// RecordUsage folds one observed outcome into the pair's record
func (s *Service) RecordUsage(ctx context.Context, cmd inbound.RecordUsageCommand) (*preference.Record, error) {
	if cmd.OriginalID == "" || cmd.AlternativeID == "" {
		return nil, errors.NewValidationError("original and alternative ids are required")
	}

	lock := s.pairLock(cmd.OriginalID, cmd.AlternativeID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.repo.FindByPair(ctx, cmd.OriginalID, cmd.AlternativeID)
	if err != nil {
		return nil, errors.NewDatabaseError("load preference record", err)
	}

	event := preference.UsageEvent{
		Contexts:   cmd.Contexts,
		Successful: cmd.Successful,
		Note:       cmd.Note,
		At:         s.now(),
	}

	var updated preference.Record
	if existing == nil {
		updated = preference.New(cmd.OriginalID, cmd.AlternativeID, event)
	} else {
		updated = preference.Reduce(*existing, event)
	}

	if err := updated.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.repo.Save(ctx, updated); err != nil {
		return nil, errors.NewDatabaseError("save preference record", err)
	}

	s.logger.Debug("Recorded preference usage",
		zap.String("original_id", cmd.OriginalID),
		zap.String("alternative_id", cmd.AlternativeID),
		zap.Bool("successful", cmd.Successful),
		zap.Int("times_used", updated.TimesUsed),
	)

	return &updated, nil
}

// GetPreferred returns the records for an original, best first
func (s *Service) GetPreferred(ctx context.Context, originalID string) ([]preference.Record, error) {
	if originalID == "" {
		return nil, errors.NewValidationError("original id is required")
	}

	records, err := s.repo.FindByOriginal(ctx, originalID)
	if err != nil {
		return nil, errors.NewDatabaseError("load preference records", err)
	}

	preference.SortByScore(records)
	return records, nil
}

func (s *Service) pairLock(originalID, alternativeID string) *sync.Mutex {
	key := originalID + "\x00" + alternativeID

	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
