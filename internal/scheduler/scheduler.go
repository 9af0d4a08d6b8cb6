package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/config"
	"github.com/mamadbah2/feedlot/internal/domain/models"
	"github.com/mamadbah2/feedlot/internal/repository/mongodb"
	"github.com/mamadbah2/feedlot/internal/repository/sheets"
	"github.com/mamadbah2/feedlot/internal/service/pens"
	"github.com/mamadbah2/feedlot/internal/service/units"
	"github.com/mamadbah2/feedlot/pkg/clients/feeder"
)

// Scheduler manages the recurring jobs: archiving the dashboard snapshot and
// polling connected feeding units. Either backend may be nil, in which case
// that part of the snapshot job is skipped.
type Scheduler struct {
	cron      *cron.Cron
	pensSvc   *pens.Service
	unitsSvc  *units.Service
	archive   mongodb.Repository
	export    sheets.Repository
	feederCli feeder.Client
	cfg       config.Config
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, pensSvc *pens.Service, unitsSvc *units.Service, archive mongodb.Repository, export sheets.Repository, feederCli feeder.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(),
		pensSvc:   pensSvc,
		unitsSvc:  unitsSvc,
		archive:   archive,
		export:    export,
		feederCli: feederCli,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.Snapshot.CronSchedule, s.archiveSnapshot); err != nil {
		s.logger.Error("failed to schedule snapshot archive", zap.Error(err))
	}

	if s.cfg.Feeder.PollSchedule != "" && s.feederCli != nil {
		if _, err := s.cron.AddFunc(s.cfg.Feeder.PollSchedule, s.pollFeeders); err != nil {
			s.logger.Error("failed to schedule feeder polling", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) archiveSnapshot() {
	s.logger.Info("archiving dashboard snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now().UTC()
	stats := s.pensSvc.DashboardStats()
	snapshot := models.DashboardSnapshot{
		Date:                      now.Truncate(24 * time.Hour),
		TotalPens:                 stats.TotalPens,
		ActivePens:                stats.ActivePens,
		TotalAnimals:              stats.TotalAnimals,
		ActiveAnimals:             stats.ActiveAnimals,
		AverageFCO:                stats.AverageFCO,
		TotalFeedConsumed:         stats.TotalFeedConsumed,
		TotalCost:                 stats.TotalCost,
		TotalWeightGain:           stats.TotalWeightGain,
		AverageDailyGainPerAnimal: stats.AverageDailyGainPerAnimal,
		CreatedAt:                 now,
	}

	if s.archive != nil {
		if err := s.archive.SaveDashboardSnapshot(ctx, snapshot); err != nil {
			s.logger.Error("failed to archive snapshot", zap.Error(err))
		}
	}
	if s.export != nil {
		if err := s.export.AppendDashboardRow(ctx, snapshot); err != nil {
			s.logger.Error("failed to export snapshot row", zap.Error(err))
		}
	}
}

func (s *Scheduler) pollFeeders() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, unit := range s.unitsSvc.ListUnits() {
		if !unit.Connected || unit.WebhookURL == "" {
			continue
		}

		samples, err := s.feederCli.FetchSamples(ctx, unit)
		if err != nil {
			s.logger.Warn("feeder poll failed", zap.String("unit_id", unit.ID), zap.Error(err))
			continue
		}

		for _, sample := range samples {
			if _, err := s.unitsSvc.RecordSample(unit.ID, sample); err != nil {
				s.logger.Error("failed to record feeder sample", zap.String("unit_id", unit.ID), zap.Error(err))
			}
		}

		if len(samples) > 0 {
			s.logger.Info("feeder samples ingested", zap.String("unit_id", unit.ID), zap.Int("count", len(samples)))
		}
	}
}
