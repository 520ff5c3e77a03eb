package reports

import (
	"context"
	"fmt"
	"sync"

	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs saved reports on their cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	jobs    map[string]cron.EntryID // report_id -> entry_id
	jobsMux sync.RWMutex
}

// NewScheduler creates a new scheduler
func NewScheduler(service *Service) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
		jobs:    make(map[string]cron.EntryID),
	}
}

// Start registers every active scheduled report and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	reports, err := s.service.Repo().ListActive()
	if err != nil {
		return fmt.Errorf("failed to load scheduled reports: %w", err)
	}

	for i := range reports {
		if err := s.AddReport(ctx, &reports[i]); err != nil {
			log.Warn().Err(err).Str("report", reports[i].Name).Msg("skipping report with bad schedule")
		}
	}

	s.cron.Start()
	log.Info().Int("reports", len(reports)).Msg("report scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Info().Msg("report scheduler stopped")
}

// AddReport schedules a report, replacing any existing entry for the same id.
func (s *Scheduler) AddReport(ctx context.Context, report *models.SavedReport) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	id := report.ID.String()
	if entryID, exists := s.jobs[id]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, id)
	}

	name := report.Name
	reportID := report.ID

	entryID, err := s.cron.AddFunc(report.Schedule, func() {
		rpt, err := s.service.Repo().GetByID(reportID.String())
		if err != nil {
			log.Error().Err(err).Str("report", name).Msg("scheduled report no longer loadable")
			return
		}

		result, err := s.service.Run(ctx, rpt, "scheduled")
		if err != nil {
			log.Error().Err(err).Str("report", name).Msg("scheduled report run failed to record")
			return
		}
		log.Info().Str("report", name).Str("status", result.Status).Msg("scheduled report executed")
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.jobs[id] = entryID
	log.Info().Str("report", name).Str("schedule", report.Schedule).Msg("report scheduled")
	return nil
}

// RemoveReport unschedules a report.
func (s *Scheduler) RemoveReport(reportID string) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[reportID]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, reportID)
		log.Info().Str("report_id", reportID).Msg("report unscheduled")
	}
}

// ScheduledReports returns the ids of all currently scheduled reports.
func (s *Scheduler) ScheduledReports() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	ids := make([]string, 0, len(s.jobs))
	for id := range s.jobs {
		ids = append(ids, id)
	}
	return ids
}
