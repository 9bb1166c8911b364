package registry

import (
	"context"
	"errors"
	"time"

	"github.com/scmmishra/subly/internal/models"
)

// Visit is one resolved request, as seen by the stats summary.
type Visit struct {
	At      time.Time
	Country string
	Device  string
	Crawler bool
}

// RecordClick adds n to the record's click counter with a read-modify-write.
// Concurrent writers may lose increments. A record already deleted when it is
// read is skipped; a delete landing between the read and the write is undone
// by the write, the same accepted race as a lost increment.
func (r *Registry) RecordClick(ctx context.Context, sub string, n int64) error {
	if n <= 0 {
		return nil
	}
	link, err := r.store.Get(ctx, sub)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	link.Clicks += n
	return r.store.Put(ctx, link)
}

// RecordVisits folds visits into the clicks:<subdomain> summary. It shares
// RecordClick's race: a delete between the existence check and the write
// leaves a stale summary behind.
func (r *Registry) RecordVisits(ctx context.Context, sub string, visits []Visit) error {
	if len(visits) == 0 {
		return nil
	}
	if _, err := r.store.Get(ctx, sub); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
	st, err := r.store.Stats(ctx, sub)
	if err != nil {
		return err
	}
	for _, v := range visits {
		st.Total++
		if v.Crawler {
			st.Crawlers++
		}
		if v.Country != "" {
			st.ByCountry[v.Country]++
		}
		if v.Device != "" {
			st.ByDevice[v.Device]++
		}
		if v.At.After(st.LastClickAt) {
			st.LastClickAt = v.At
		}
	}
	return r.store.PutStats(ctx, sub, st)
}
