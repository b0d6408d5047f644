// Package preference contains the learned-preference domain model: one record
// per (original, alternative) pair accumulating observed outcomes.
//
// Records are immutable values. State transitions go through the pure Reduce
// function; persistence of the result is the caller's concern.
package preference

import (
	"errors"
	"sort"
	"time"
)

// Domain errors for preference records
var (
	ErrEmptyPairID        = errors.New("preference record requires original and alternative ids")
	ErrInvalidSuccessRate = errors.New("success rate must be between 0 and 1")
	ErrInvalidTimesUsed   = errors.New("times used must be at least 1")
)

// Record accumulates "given A was unavailable, the user chose B, and it
// worked" facts for one (original, alternative) pair
type Record struct {
	OriginalID    string
	AlternativeID string
	TimesUsed     int
	SuccessRate   float64 // running average of boolean outcomes
	Contexts      []string
	Notes         []string
	LastUsedAt    time.Time
}

// Validate validates the record at the write boundary
func (r Record) Validate() error {
	if r.OriginalID == "" || r.AlternativeID == "" {
		return ErrEmptyPairID
	}
	if r.TimesUsed < 1 {
		return ErrInvalidTimesUsed
	}
	if r.SuccessRate < 0 || r.SuccessRate > 1 {
		return ErrInvalidSuccessRate
	}
	return nil
}

// Score is the popularity-weighted success used for ranking: a record used
// once successfully must not outrank one used ten times at 90% success
func (r Record) Score() float64 {
	return float64(r.TimesUsed) * r.SuccessRate
}

// UsageEvent is one observed usage of an alternative
type UsageEvent struct {
	Contexts   []string
	Successful bool
	Note       string
	At         time.Time
}

// New creates the record for a pair's first observed usage
func New(originalID, alternativeID string, e UsageEvent) Record {
	r := Record{
		OriginalID:    originalID,
		AlternativeID: alternativeID,
		TimesUsed:     1,
		Contexts:      dedupe(e.Contexts),
		LastUsedAt:    e.At,
	}
	if e.Successful {
		r.SuccessRate = 1
	}
	if e.Note != "" {
		r.Notes = []string{e.Note}
	}
	return r
}

// Reduce folds a usage event into a record, producing a new record.
// TimesUsed only increases; the success rate stays the running average of
// all outcomes; contexts are unioned with set semantics.
func Reduce(r Record, e UsageEvent) Record {
	out := r

	outcome := 0.0
	if e.Successful {
		outcome = 1.0
	}
	out.TimesUsed = r.TimesUsed + 1
	out.SuccessRate = (r.SuccessRate*float64(r.TimesUsed) + outcome) / float64(out.TimesUsed)

	out.Contexts = dedupe(append(append([]string(nil), r.Contexts...), e.Contexts...))
	out.Notes = append([]string(nil), r.Notes...)
	if e.Note != "" {
		out.Notes = append(out.Notes, e.Note)
	}
	if e.At.After(r.LastUsedAt) {
		out.LastUsedAt = e.At
	}
	return out
}

// SortByScore sorts records descending by popularity-weighted success
func SortByScore(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score() > records[j].Score()
	})
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
