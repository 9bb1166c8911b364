// Package registry owns the link lifecycle: creation with collision checks
// and default substitution, listing, deletion and click accounting.
package registry

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scmmishra/subly/internal/models"
	"github.com/scmmishra/subly/internal/presets"
	"github.com/scmmishra/subly/internal/slug"
)

// A subdomain must be a single lowercase hostname label.
var labelRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

type CreateInput struct {
	OfferID     string
	CustomCode  string
	TargetURL   string
	Domain      string
	Title       string
	Description string
	ImageURL    string
}

type Created struct {
	Link *models.Link
	URL  string
}

type Registry struct {
	store   *models.LinkStore
	presets *presets.Presets
	gen     *slug.Generator
	now     func() time.Time
}

func New(store *models.LinkStore, p *presets.Presets, gen *slug.Generator) *Registry {
	return &Registry{
		store:   store,
		presets: p,
		gen:     gen,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the creation timestamp source.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

func (r *Registry) Presets() *presets.Presets { return r.presets }

func (r *Registry) Create(ctx context.Context, in CreateInput) (*Created, error) {
	offerID := strings.ToUpper(strings.TrimSpace(in.OfferID))
	if offerID == "" {
		offerID = presets.CustomOffer
	}

	target := strings.TrimSpace(in.TargetURL)
	if u, ok := r.presets.Offer(offerID); ok {
		target = u
	}
	if target == "" {
		return nil, invalid("targetUrl", "no destination URL for this offer")
	}

	domain := strings.ToLower(strings.TrimSpace(in.Domain))
	if domain == "" {
		return nil, invalid("domain", "domain is required")
	}

	sub := strings.ToLower(strings.TrimSpace(in.CustomCode))
	if sub == "" {
		sub = r.gen.DefaultSubdomain()
	} else if !labelRe.MatchString(sub) {
		return nil, invalid("customCode", "must be a hostname label (a-z, 0-9, '-')")
	}

	// Fast path for the common conflict; PutNew below closes the race.
	if _, err := r.store.Get(ctx, sub); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	link := &models.Link{
		Subdomain:   sub,
		PathCode:    r.gen.PathCode(),
		Domain:      domain,
		Title:       r.orDefault(in.Title, r.presets.Titles),
		Description: r.orDefault(in.Description, r.presets.Descriptions),
		ImageURL:    r.orDefault(in.ImageURL, r.presets.Images),
		TargetURL:   target,
		OfferID:     offerID,
		UniqueCode:  r.gen.TrackingCode(),
		CreatedAt:   r.now(),
	}

	ok, err := r.store.PutNew(ctx, link)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}

	log.Info().Str("subdomain", sub).Str("domain", domain).Str("offer", offerID).Msg("link created")
	return &Created{Link: link, URL: link.FullURL()}, nil
}

func (r *Registry) Get(ctx context.Context, sub string) (*models.Link, error) {
	return r.store.Get(ctx, strings.ToLower(sub))
}

// List returns all records, newest first. Equal timestamps keep storage order.
func (r *Registry) List(ctx context.Context) ([]models.Link, error) {
	links, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
	return links, nil
}

// Delete is idempotent: removing an unknown subdomain succeeds.
func (r *Registry) Delete(ctx context.Context, sub string) error {
	sub = strings.ToLower(strings.TrimSpace(sub))
	if sub == "" {
		return invalid("subdomain", "subdomain is required")
	}
	if err := r.store.Delete(ctx, sub); err != nil {
		return err
	}
	log.Info().Str("subdomain", sub).Msg("link deleted")
	return nil
}

func (r *Registry) Stats(ctx context.Context, sub string) (*models.ClickStats, error) {
	sub = strings.ToLower(sub)
	if _, err := r.store.Get(ctx, sub); err != nil {
		return nil, err
	}
	return r.store.Stats(ctx, sub)
}

func (r *Registry) orDefault(v string, pool []string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return r.gen.Pick(pool)
}
