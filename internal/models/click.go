package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/scmmishra/subly/internal/kv"
)

// ClickStats is the per-link visit summary stored under clicks:<subdomain>.
type ClickStats struct {
	Total       int64            `json:"total"`
	Crawlers    int64            `json:"crawlers"`
	LastClickAt time.Time        `json:"lastClickAt"`
	ByCountry   map[string]int64 `json:"byCountry"`
	ByDevice    map[string]int64 `json:"byDevice"`
}

func NewClickStats() *ClickStats {
	return &ClickStats{
		ByCountry: map[string]int64{},
		ByDevice:  map[string]int64{},
	}
}

// Stats returns the stored summary, or an empty one when none exists yet.
func (s *LinkStore) Stats(ctx context.Context, sub string) (*ClickStats, error) {
	key := StatsKey(sub)
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return NewClickStats(), nil
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Key: key, Err: err}
	}
	st := NewClickStats()
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, &StoreError{Op: "decode", Key: key, Err: err}
	}
	if st.ByCountry == nil {
		st.ByCountry = map[string]int64{}
	}
	if st.ByDevice == nil {
		st.ByDevice = map[string]int64{}
	}
	return st, nil
}

func (s *LinkStore) PutStats(ctx context.Context, sub string, st *ClickStats) error {
	key := StatsKey(sub)
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := s.kv.Put(ctx, key, raw); err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	return nil
}
