package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/scmmishra/subly/internal/kv"
)

const (
	linkPrefix  = "link:"
	statsPrefix = "clicks:"
)

type Link struct {
	Subdomain   string    `json:"subdomain"`
	PathCode    string    `json:"pathCode"`
	Domain      string    `json:"domain"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	TargetURL   string    `json:"targetUrl"`
	OfferID     string    `json:"offerId"`
	UniqueCode  string    `json:"uniqueCode"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FullURL is the public address handed out for the link.
func (l *Link) FullURL() string {
	return "https://" + l.Subdomain + "." + l.Domain + "/" + l.PathCode
}

func LinkKey(sub string) string  { return linkPrefix + sub }
func StatsKey(sub string) string { return statsPrefix + sub }

// LinkStore maps link records and their visit summaries onto a kv.Store.
type LinkStore struct {
	kv kv.Store
}

func NewLinkStore(store kv.Store) *LinkStore {
	return &LinkStore{kv: store}
}

func (s *LinkStore) Get(ctx context.Context, sub string) (*Link, error) {
	key := LinkKey(sub)
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "get", Key: key, Err: err}
	}
	var l Link
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, &StoreError{Op: "decode", Key: key, Err: err}
	}
	return &l, nil
}

func (s *LinkStore) Put(ctx context.Context, l *Link) error {
	key := LinkKey(l.Subdomain)
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode link: %w", err)
	}
	if err := s.kv.Put(ctx, key, raw); err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	return nil
}

// PutNew stores l only if no record exists for its subdomain yet.
func (s *LinkStore) PutNew(ctx context.Context, l *Link) (bool, error) {
	key := LinkKey(l.Subdomain)
	raw, err := json.Marshal(l)
	if err != nil {
		return false, fmt.Errorf("encode link: %w", err)
	}
	ok, err := s.kv.PutIfAbsent(ctx, key, raw)
	if err != nil {
		return false, &StoreError{Op: "put", Key: key, Err: err}
	}
	return ok, nil
}

// Delete removes the record and then its visit summary. A failure on the
// second key leaves the summary orphaned; nothing is rolled back.
func (s *LinkStore) Delete(ctx context.Context, sub string) error {
	for _, key := range []string{LinkKey(sub), StatsKey(sub)} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return &StoreError{Op: "delete", Key: key, Err: err}
		}
	}
	return nil
}

// List fetches every record in storage order. Keys deleted between the
// listing and the fetch are skipped.
func (s *LinkStore) List(ctx context.Context) ([]Link, error) {
	keys, err := s.kv.Keys(ctx, linkPrefix)
	if err != nil {
		return nil, &StoreError{Op: "list", Key: linkPrefix, Err: err}
	}
	links := make([]Link, 0, len(keys))
	for _, key := range keys {
		l, err := s.Get(ctx, key[len(linkPrefix):])
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}
	return links, nil
}
