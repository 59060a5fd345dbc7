package session

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/RaikyD/orders-tracker/internal/logger"
)

// Sweeper periodically drops expired sessions from a Store.
type Sweeper struct {
	cron  *cron.Cron
	store Store
}

func NewSweeper(store Store, schedule string) (*Sweeper, error) {
	s := &Sweeper{cron: cron.New(), store: store}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) Sweep() {
	n, err := s.store.DeleteExpired(context.Background(), time.Now())
	if err != nil {
		logger.Warn("session sweep failed", "err", err)
		return
	}
	if n > 0 {
		logger.Info("expired sessions removed", "count", n)
	}
}

func (s *Sweeper) Start() { s.cron.Start() }

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
