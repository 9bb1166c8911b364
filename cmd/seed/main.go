package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scmmishra/subly/internal/config"
	"github.com/scmmishra/subly/internal/kv"
	"github.com/scmmishra/subly/internal/logger"
	"github.com/scmmishra/subly/internal/models"
	"github.com/scmmishra/subly/internal/presets"
	"github.com/scmmishra/subly/internal/registry"
	"github.com/scmmishra/subly/internal/slug"
)

type seedLink struct {
	code   string
	target string
	title  string
	desc   string
	// weight controls relative visit volume (higher = more visits)
	weight float64
}

var links = []seedLink{
	{"docs", "https://example.com/docs", "Product Documentation", "Guides and references", 5.0},
	{"launch", "https://example.com/blog/launch", "Launch Notes", "What shipped this release", 4.0},
	{"pricing", "https://example.com/pricing", "Pricing", "Plans for every team size", 3.5},
	{"webinar", "https://example.com/events/webinar?utm_source=share", "Live Webinar", "Join the monthly walkthrough", 2.8},
	{"careers", "https://example.com/careers", "We're Hiring", "Open roles across engineering", 2.0},
	{"status", "https://status.example.com", "Status", "Current service status", 1.2},
	{"", "https://example.com/changelog", "", "", 1.5},
	{"", "https://example.com/community", "", "", 1.0},
}

type weighted struct {
	v      string
	weight float64
}

var countries = []weighted{
	{"US", 25}, {"IN", 20}, {"DE", 8}, {"GB", 7}, {"BR", 6}, {"FR", 5},
	{"CA", 4}, {"AU", 3}, {"JP", 3}, {"NL", 2}, {"", 4},
}

var devices = []weighted{
	{"desktop", 60},
	{"mobile", 32},
	{"bot", 8},
}

func pick(items []weighted, rng *rand.Rand) string {
	var total float64
	for _, item := range items {
		total += item.weight
	}
	r := rng.Float64() * total
	for _, item := range items {
		r -= item.weight
		if r <= 0 {
			return item.v
		}
	}
	return items[len(items)-1].v
}

func main() {
	logger.Init("info", true)
	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatal().Err(err).Msg("load .env")
	}

	storeURL := os.Getenv("SUBLY_STORE")
	if storeURL == "" {
		storeURL = "sqlite:./subly.db"
	}
	domain := "example.com"
	if d, _, _ := strings.Cut(os.Getenv("SUBLY_DOMAINS"), ","); strings.TrimSpace(d) != "" {
		domain = strings.TrimSpace(d)
	}

	ctx := context.Background()
	store, err := kv.Open(ctx, storeURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer store.Close()

	rng := rand.New(rand.NewSource(42)) // deterministic seed
	now := time.Now().UTC()
	start := now.AddDate(0, -3, 0)

	// Creation dates are spread two days apart starting three months back.
	n := 0
	clock := func() time.Time {
		t := start.Add(time.Duration(n*2) * 24 * time.Hour)
		n++
		return t
	}

	p := presets.Default(nil)
	reg := registry.New(models.NewLinkStore(store), p, slug.New(rng, p.Names)).WithClock(clock)

	fmt.Println("Seeding links...")
	totalVisits := 0
	for _, sl := range links {
		created, err := reg.Create(ctx, registry.CreateInput{
			CustomCode:  sl.code,
			TargetURL:   sl.target,
			Domain:      domain,
			Title:       sl.title,
			Description: sl.desc,
		})
		if errors.Is(err, registry.ErrConflict) {
			fmt.Printf("  %-48s exists, skipped\n", sl.code)
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("code", sl.code).Msg("create link")
		}
		link := created.Link

		var visits []registry.Visit
		for day := link.CreatedAt; day.Before(now); day = day.Add(24 * time.Hour) {
			perDay := int(sl.weight * 6 * (0.6 + rng.Float64()*0.8))
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				perDay = perDay * 4 / 10
			}
			for range perDay {
				at := day.Add(time.Duration(rng.Intn(86400)) * time.Second)
				if at.After(now) {
					continue
				}
				device := pick(devices, rng)
				visits = append(visits, registry.Visit{
					At:      at,
					Country: pick(countries, rng),
					Device:  device,
					Crawler: device == "bot",
				})
			}
		}

		if err := reg.RecordClick(ctx, link.Subdomain, int64(len(visits))); err != nil {
			log.Fatal().Err(err).Str("subdomain", link.Subdomain).Msg("record clicks")
		}
		if err := reg.RecordVisits(ctx, link.Subdomain, visits); err != nil {
			log.Fatal().Err(err).Str("subdomain", link.Subdomain).Msg("record visits")
		}
		totalVisits += len(visits)
		fmt.Printf("  %-48s %6d visits\n", created.URL, len(visits))
	}

	fmt.Printf("\nDone! Created %d links with %d total visits.\n", len(links), totalVisits)
	fmt.Printf("Store: %s\n", storeURL)
}
