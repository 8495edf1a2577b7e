// internal/service/summary/summary.go
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	"github.com/dinerozz/tabsnoop-backend/internal/repository"
	"github.com/dinerozz/tabsnoop-backend/pkg/utils"
)

type SummaryService interface {
	GetSummary(ctx context.Context, day time.Time) (*entity.Summary, error)
	GetDomainRecord(ctx context.Context, domain string) (*entity.DomainRecord, error)
	ClearAll(ctx context.Context) error
}

type summaryService struct {
	repo repository.DomainRecordRepository
	loc  *time.Location
}

func NewSummaryService(repo repository.DomainRecordRepository, loc *time.Location) SummaryService {
	if loc == nil {
		loc = time.Local
	}
	return &summaryService{repo: repo, loc: loc}
}

func (s *summaryService) GetSummary(ctx context.Context, day time.Time) (*entity.Summary, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get domain records: %w", err)
	}

	return Aggregate(records, day, s.loc), nil
}

func (s *summaryService) GetDomainRecord(ctx context.Context, domain string) (*entity.DomainRecord, error) {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return nil, fmt.Errorf("domain is required")
	}

	record, err := s.repo.GetOrDefault(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to get domain record: %w", err)
	}

	return record, nil
}

// ClearAll erases every stored record. Intervals still open in the tracker
// are untouched and recreate their record on the next flush.
func (s *summaryService) ClearAll(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear domain records: %w", err)
	}

	return nil
}

// Aggregate rolls records up for display. Per-domain totals are the stored
// totalTime values. The day total counts a visit in full when its start falls
// on day's calendar date in loc; visits crossing midnight are not split.
func Aggregate(records map[string]entity.DomainRecord, day time.Time, loc *time.Location) *entity.Summary {
	summary := &entity.Summary{
		Date:    utils.LocalDate(day, loc),
		Domains: make([]entity.DomainTotal, 0, len(records)),
	}

	for domain, record := range records {
		summary.TotalTime += record.TotalTime
		summary.Domains = append(summary.Domains, entity.DomainTotal{
			Domain:    domain,
			TotalTime: record.TotalTime,
			Formatted: utils.FormatDuration(record.TotalTime),
			Visits:    len(record.Visits),
		})

		for _, visit := range record.Visits {
			if utils.SameLocalDay(visit.StartTime(), day, loc) {
				summary.TodayTotal += visit.Duration()
			}
		}
	}

	sort.SliceStable(summary.Domains, func(i, j int) bool {
		a, b := summary.Domains[i], summary.Domains[j]
		if a.TotalTime != b.TotalTime {
			return a.TotalTime > b.TotalTime
		}
		return a.Domain < b.Domain
	})

	for i := range summary.Domains {
		summary.Domains[i].Percentage = utils.Share(summary.Domains[i].TotalTime, summary.TotalTime)
	}

	summary.TotalDomains = len(summary.Domains)
	summary.TodayFormatted = utils.FormatDuration(summary.TodayTotal)

	return summary
}
