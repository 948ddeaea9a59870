package service

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

// Sweeper runs the reconciliation on a schedule so the alert feed stays
// current between page reads.
type Sweeper struct {
	svc       AlertService
	scheduler *cron.Cron
	spec      string
	userID    int
}

func NewSweeper(svc AlertService, spec string, userID int) *Sweeper {
	return &Sweeper{
		svc:       svc,
		scheduler: cron.New(cron.WithSeconds()),
		spec:      spec,
		userID:    userID,
	}
}

func (sw *Sweeper) Start() error {
	_, err := sw.scheduler.AddFunc(sw.spec, func() {
		logger.Info("Sweeper: running scheduled alert reconciliation")
		if _, err := sw.svc.ReconcileAndList(context.Background(), sw.userID); err != nil {
			logger.Error("Sweeper: reconciliation failed", err, nil)
		}
	})
	if err != nil {
		return err
	}
	sw.scheduler.Start()
	logger.Info("Alert sweeper initialized with spec '%s'", sw.spec)
	return nil
}

func (sw *Sweeper) Stop() {
	sw.scheduler.Stop()
}
