package services

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/dwellcheck/dwellcheck-backend/internal/constants"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

// Pinger is the slice of the data source the heartbeat needs.
// *pgxpool.Pool satisfies it directly.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HeartbeatService keeps the backing database warm with a periodic
// ping. It replaces the old implicit module-level timer: owned by the
// process, started and stopped deterministically from main.
type HeartbeatService struct {
	pinger Pinger
	cron   *cron.Cron
}

func NewHeartbeatService(pinger Pinger) *HeartbeatService {
	return &HeartbeatService{pinger: pinger}
}

func (s *HeartbeatService) Start() error {
	if s.pinger == nil {
		utils.Logger.Info("Heartbeat disabled: no database to keep warm")
		return nil
	}
	s.cron = cron.New()
	_, err := s.cron.AddFunc(constants.HeartbeatCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.HeartbeatTimeout)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			utils.Logger.WithError(err).Warn("Heartbeat ping failed")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	utils.Logger.Info("Heartbeat started")
	return nil
}

func (s *HeartbeatService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		utils.Logger.Info("Heartbeat stopped")
	}
}
