// The orchestrator: one PerformScraping call runs the whole
// fetch -> extract -> normalize -> persist pipeline for a keyword and a set
// of countries. Everything here is sequential to bound load on the sites and
// on the local browser, and nothing here is fatal: failed combinations just
// shrink the result.

package scrape

import (
	"context"
	"errors"
	"log"
	"time"

	"go-empleo-scraper/internal/fetch"
	"go-empleo-scraper/internal/models"
	"go-empleo-scraper/internal/normalizer"
	"go-empleo-scraper/internal/scraper"
	"go-empleo-scraper/internal/scraper/bumeran"
	"go-empleo-scraper/internal/scraper/computrabajo"
	"go-empleo-scraper/internal/scraper/elempleo"
)

// JobStore is the persistence collaborator. Implementations own identity
// assignment, timestamps and the source_url uniqueness arbitration.
type JobStore interface {
	UpsertJob(ctx context.Context, job models.CanonicalJob) (*models.StoredJob, bool, error)
}

// Reporter gets a digest after each run. Optional.
type Reporter interface {
	SendRunSummary(keyword string, countries []string, found, persisted, failed int) error
}

type Service struct {
	adapters map[string][]scraper.SiteAdapter
	static   fetch.Strategy
	rendered fetch.Strategy
	norm     *normalizer.Normalizer
	store    JobStore
	reporter Reporter
	now      func() time.Time
}

// DefaultAdapters is the fixed allow-list: which adapters run for which
// country, in dispatch order.
func DefaultAdapters() map[string][]scraper.SiteAdapter {
	ct := computrabajo.New()
	el := elempleo.New()
	bu := bumeran.New()
	return map[string][]scraper.SiteAdapter{
		"co": {ct, el},
		"mx": {ct, bu},
		"ar": {ct, bu},
		"pe": {ct, bu},
		"cl": {ct},
	}
}

// New wires a Service. store may be nil for a dry run (nothing persisted);
// reporter may be nil to disable summaries.
func New(adapters map[string][]scraper.SiteAdapter, static, rendered fetch.Strategy, store JobStore, reporter Reporter) *Service {
	return &Service{
		adapters: adapters,
		static:   static,
		rendered: rendered,
		norm:     normalizer.New(),
		store:    store,
		reporter: reporter,
		now:      time.Now,
	}
}

// PerformScraping scrapes every supported country in order, normalizes the
// aggregate and persists it. It always returns the full normalized list,
// whatever happened to individual fetches or upserts.
func (s *Service) PerformScraping(ctx context.Context, keyword string, countries []string) []models.CanonicalJob {
	supported := make([]string, 0, len(countries))
	for _, country := range countries {
		if _, ok := s.adapters[country]; ok {
			supported = append(supported, country)
		} else {
			log.Printf("⚠️ Unsupported country %q, skipping", country)
		}
	}

	var raw []models.RawJob
	for _, country := range supported {
		for _, a := range s.adapters[country] {
			log.Printf("▶️ %s/%s: scraping %q", a.Name(), country, keyword)
			jobs := s.runAdapter(ctx, a, keyword, country)
			log.Printf("  📦 %s/%s: %d listings", a.Name(), country, len(jobs))
			raw = append(raw, jobs...)
		}
	}

	// collapse repeats within the run; the store's uniqueness constraint
	// handles repeats across runs
	seen := make(map[string]bool, len(raw))
	unique := make([]models.RawJob, 0, len(raw))
	for _, job := range raw {
		if seen[job.SourceURL] {
			continue
		}
		seen[job.SourceURL] = true
		unique = append(unique, job)
	}

	canonical := s.norm.NormalizeAll(unique)

	persisted, failed := 0, 0
	if s.store != nil {
		for _, job := range canonical {
			stored, created, err := s.store.UpsertJob(ctx, job)
			if err != nil {
				failed++
				log.Printf("⚠️ Failed to persist %s (%s @ %s): %v", job.SourceURL, job.Title, job.Company, err)
				continue
			}
			persisted++
			if created {
				log.Printf("  💾 Created job %d: %s", stored.ID, job.Title)
			} else {
				log.Printf("  ♻️ Updated job %d: %s", stored.ID, job.Title)
			}
		}
	}

	log.Printf("🏁 Scrape done: %d jobs, %d persisted, %d failed", len(canonical), persisted, failed)

	if s.reporter != nil {
		if err := s.reporter.SendRunSummary(keyword, supported, len(canonical), persisted, failed); err != nil {
			log.Printf("⚠️ Failed to send run summary: %v", err)
		}
	}

	return canonical
}

// runAdapter executes one site/country combination. Any failure yields an
// empty list for that combination and is reported, never escalated.
func (s *Service) runAdapter(ctx context.Context, a scraper.SiteAdapter, keyword, country string) []models.RawJob {
	searchURL, err := a.SearchURL(keyword, country)
	if err != nil {
		log.Printf("  ⚠️ %s/%s: %v", a.Name(), country, err)
		return nil
	}

	strategy := s.static
	if a.Mode() == fetch.KindRendered {
		strategy = s.rendered
	}

	markup, err := strategy.Fetch(ctx, searchURL)
	if err != nil {
		var fe *fetch.Error
		if errors.As(err, &fe) {
			log.Printf("  ⚠️ %s/%s: %s fetch failed (%s): %v", a.Name(), country, a.Mode(), fe.Reason, err)
		} else {
			log.Printf("  ⚠️ %s/%s: fetch failed: %v", a.Name(), country, err)
		}
		return nil
	}

	return scraper.ExtractAll(a, markup, searchURL, country, s.now())
}
