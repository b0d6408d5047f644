package inbound

import (
	"context"

	"github.com/cocinero/v1/internal/domain/preference"
)

// PreferenceService accumulates observed substitution/adaptation outcomes.
// It is shared verbatim between ingredient substitution and appliance
// adaptation; both store records keyed by an (original, alternative) pair.
type PreferenceService interface {
	// RecordUsage folds one observed outcome into the pair's record,
	// creating the record on first use. Concurrent calls on the same pair
	// are serialized.
	RecordUsage(ctx context.Context, cmd RecordUsageCommand) (*preference.Record, error)

	// GetPreferred returns the records for an original, sorted descending
	// by popularity-weighted success (timesUsed x successRate)
	GetPreferred(ctx context.Context, originalID string) ([]preference.Record, error)
}

// RecordUsageCommand describes one observed usage
type RecordUsageCommand struct {
	OriginalID    string
	AlternativeID string
	Contexts      []string
	Successful    bool
	Note          string
}
