// Package pipeline runs one comp-intel report end to end: fetch both
// sources, normalize, run the reconciliation engine, decorate with the
// optional collaborators, and persist. The engine never raises for data
// quality; source faults degrade that side of the report and every optional
// collaborator fault is caught at its call site.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"compintel/server/config"
	"compintel/server/internal/analysis"
	"compintel/server/internal/history"
	"compintel/server/internal/models"
	"compintel/server/internal/narrative"
	"compintel/server/internal/normalize"
)

// ListingSource supplies the raw listing record for a URL.
type ListingSource interface {
	FetchListing(url string) (*models.RawListing, error)
}

// PermitSource supplies the raw permit feed for a property.
type PermitSource interface {
	FetchPermits(apn, address, url string) (*models.RawPermitFeed, error)
}

// Summarizer produces strategy notes for a finished report. Implementations
// must not fail; the narrative service falls back internally.
type Summarizer interface {
	Summarize(report *models.CompReport) *models.StrategyNotes
}

// LicenseLookup resolves a contractor license number on the state registry.
type LicenseLookup interface {
	Lookup(lic string) (*models.LicenseDetail, error)
}

// Pipeline wires the collaborators around the engine. Listings and Permits
// are required; Narrative, Licenses, and History are optional and may be nil,
// in which case the report simply lacks those fields.
type Pipeline struct {
	logger    *logrus.Logger
	listings  ListingSource
	permits   PermitSource
	narrative Summarizer
	licenses  LicenseLookup
	store     history.Store

	cutoffYear   int
	summariesDir string
}

type Options struct {
	Narrative    Summarizer
	Licenses     LicenseLookup
	Store        history.Store
	CutoffYear   int
	SummariesDir string
}

func New(logger *logrus.Logger, listings ListingSource, permits PermitSource, opts Options) *Pipeline {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Pipeline{
		logger:       logger,
		listings:     listings,
		permits:      permits,
		narrative:    opts.Narrative,
		licenses:     opts.Licenses,
		store:        opts.Store,
		cutoffYear:   opts.CutoffYear,
		summariesDir: opts.SummariesDir,
	}
}

// Run produces the combined report for one listing URL. It always returns a
// complete, internally consistent report; missing data shows up as nil
// fields plus data notes, never as an error.
func (p *Pipeline) Run(url string) *models.CompReport {
	p.logger.WithField("url", url).Info("Running comp-intel pipeline")

	rawListing, err := p.listings.FetchListing(url)
	if err != nil {
		p.logger.WithError(err).Error("Listing fetch failed")
		rawListing = &models.RawListing{
			URL:        url,
			SourceNote: fmt.Sprintf("listing fetch failed: %v", err),
		}
	}
	property := normalize.Listing(rawListing, p.logger)

	rawPermits, err := p.permits.FetchPermits(property.APN, property.Address, url)
	if err != nil {
		p.logger.WithError(err).Error("Permit fetch failed")
		rawPermits = &models.RawPermitFeed{
			SourceNote: fmt.Sprintf("permit fetch failed: %v", err),
		}
	}
	permits := normalize.Permits(rawPermits, p.cutoffYear, p.logger)

	report := p.derive(url, property, permits)

	if p.narrative != nil {
		report.Strategy = p.narrative.Summarize(report)
	} else {
		report.Strategy = narrative.Fallback(report)
	}

	p.decorateLicense(report)
	p.appendHistory(report)
	p.persist(report)

	return report
}

// derive runs the pure engine over the two normalized records.
func (p *Pipeline) derive(url string, property *models.PropertyRecord, permits *models.PermitSet) *models.CompReport {
	keywords := config.GetKeywordTable()
	schedule := config.GetCostSchedule()

	earliestPermit := permits.EarliestApplicationDate()
	events := analysis.SelectEvents(property.Timeline, earliestPermit)
	metrics := analysis.DeriveMetrics(events, property)
	cats := analysis.ClassifyPermits(permits.Permits, keywords)
	team := analysis.ExtractTeam(permits.Permits)
	timeline := analysis.AssembleTimeline(permits.Permits, keywords, metrics.PurchaseDate, metrics.ExitDate)
	construction := analysis.BuildConstructionSummary(metrics, cats)
	costs := analysis.EstimateCosts(metrics, construction, cats, schedule)
	fitness := analysis.ScoreDeal(metrics, cats)
	notes := analysis.CollectNotes(property, permits, metrics, timeline, costs)

	// A rejected purchase candidate is a provable inconsistency worth its
	// own note: an earlier sale exists but permits predate it.
	if events.Purchase == nil && countSales(property.Timeline) >= 2 {
		notes = append(notes, "earlier sale postdates the first permit application; purchase treated as unknown")
	}

	return &models.CompReport{
		ID:           uuid.NewString(),
		URL:          url,
		Address:      property.Address,
		GeneratedAt:  time.Now(),
		Property:     property,
		Permits:      permits,
		Events:       events,
		Metrics:      metrics,
		Categories:   cats,
		Team:         team,
		Construction: construction,
		Timeline:     timeline,
		Costs:        costs,
		Fitness:      fitness,
		PermitCount:  len(permits.Permits),
		DataNotes:    notes,
	}
}

// RunMany runs the pipeline for several URLs with per-URL fault isolation: a
// panic while processing one URL yields an error-shaped report entry and the
// batch continues.
func (p *Pipeline) RunMany(urls []string) []*models.CompReport {
	reports := make([]*models.CompReport, 0, len(urls))
	for _, url := range urls {
		reports = append(reports, p.runIsolated(url))
	}
	return reports
}

func (p *Pipeline) runIsolated(url string) (report *models.CompReport) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("url", url).Errorf("Pipeline panicked: %v", r)
			report = &models.CompReport{
				ID:          uuid.NewString(),
				URL:         url,
				Address:     "Error processing property",
				GeneratedAt: time.Now(),
				DataNotes:   []string{fmt.Sprintf("pipeline failed: %v", r)},
			}
		}
	}()
	return p.Run(url)
}

func (p *Pipeline) decorateLicense(report *models.CompReport) {
	if p.licenses == nil {
		return
	}
	gc := report.Team.PrimaryGC
	if gc == nil || gc.License == "" {
		return
	}
	detail, err := p.licenses.Lookup(gc.License)
	if err != nil {
		p.logger.WithError(err).WithField("license", gc.License).Warn("License lookup failed")
		return
	}
	report.GCRegistry = detail
}

func (p *Pipeline) appendHistory(report *models.CompReport) {
	if p.store == nil {
		return
	}
	rec := &models.SearchRecord{
		ReportID:      report.ID,
		URL:           report.URL,
		Address:       report.Address,
		CreatedAt:     report.GeneratedAt,
		PermitCount:   report.PermitCount,
		PurchasePrice: report.Metrics.PurchasePrice,
		ExitPrice:     report.Metrics.ExitPrice,
		ROIPct:        report.Metrics.ROIPct,
		ScopeLevel:    report.Categories.ScopeLevel,
		Score:         report.Fitness.Score,
		Grade:         report.Fitness.Grade,
	}
	if report.Team.PrimaryGC != nil {
		rec.PrimaryGC = report.Team.PrimaryGC.Name
	}
	if report.Team.PrimaryArchitect != nil {
		rec.PrimaryArchitect = report.Team.PrimaryArchitect.Name
	}
	if report.Team.PrimaryEngineer != nil {
		rec.PrimaryEngineer = report.Team.PrimaryEngineer.Name
	}
	if err := p.store.Append(rec); err != nil {
		p.logger.WithError(err).Error("Failed to append search history")
	}
}

func (p *Pipeline) persist(report *models.CompReport) {
	if p.summariesDir == "" {
		return
	}
	if err := os.MkdirAll(p.summariesDir, 0755); err != nil {
		p.logger.WithError(err).Error("Failed to create summaries directory")
		return
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		p.logger.WithError(err).Error("Failed to marshal report")
		return
	}
	path := filepath.Join(p.summariesDir, fmt.Sprintf("comp_%s.json", report.GeneratedAt.Format("20060102-150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		p.logger.WithError(err).Error("Failed to write report JSON")
		return
	}
	p.logger.WithField("path", path).Info("Saved combined report")
}

func countSales(timeline []models.TimelineEvent) int {
	n := 0
	for _, ev := range timeline {
		if ev.IsSale() {
			n++
		}
	}
	return n
}
