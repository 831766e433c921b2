package services

import (
	"context"
	"fmt"
	"time"

	"auction-pipeline/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CycleScheduler triggers processing cycles on a fixed interval.
type CycleScheduler struct {
	cron      *cron.Cron
	processor *AuctionProcessor
	interval  time.Duration
	log       logger.Logger
}

func NewCycleScheduler(processor *AuctionProcessor, interval time.Duration, log logger.Logger) *CycleScheduler {
	return &CycleScheduler{
		cron:      cron.New(cron.WithSeconds()),
		processor: processor,
		interval:  interval,
		log:       log,
	}
}

func (s *CycleScheduler) Start(ctx context.Context) error {
	s.log.Info("Starting cycle scheduler", "interval", s.interval.String())

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		count, err := s.processor.RunCycle(ctx)
		if err != nil {
			s.log.Error("Processing cycle failed", "error", err)
			return
		}
		if count > 0 {
			s.log.Info("Processing cycle finished", "processed_count", count)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *CycleScheduler) Stop() error {
	s.log.Info("Stopping cycle scheduler")
	s.cron.Stop()
	return nil
}
