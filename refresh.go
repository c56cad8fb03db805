package cryptofolio

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Refresher periodically refreshes a Quotes snapshot through a PriceSource.
// A failed tick is logged and the schedule keeps running.
type Refresher struct {
	cron   *cron.Cron
	source PriceSource
	assets []string
	log    zerolog.Logger

	// OnRefresh, when set, runs after every tick, failed or not.
	OnRefresh func()
}

func NewRefresher(source PriceSource, assets []string, every time.Duration, log zerolog.Logger) (*Refresher, error) {
	if every <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", every)
	}
	r := &Refresher{
		cron:   cron.New(),
		source: source,
		assets: assets,
		log:    log,
	}
	if _, err := r.cron.AddFunc(fmt.Sprintf("@every %s", every), r.tick); err != nil {
		return nil, fmt.Errorf("could not schedule refresh: %w", err)
	}
	return r, nil
}

func (r *Refresher) tick() {
	start := time.Now()
	if err := r.source.RefreshAll(r.assets); err != nil {
		r.log.Warn().Err(err).Msg("partial price refresh")
	} else {
		r.log.Debug().Dur("took", time.Since(start)).Msg("prices refreshed")
	}
	if r.OnRefresh != nil {
		r.OnRefresh()
	}
}

// Start runs one immediate refresh then begins the schedule.
func (r *Refresher) Start() {
	r.tick()
	r.cron.Start()
	r.log.Info().Int("assets", len(r.assets)).Msg("price refresher started")
}

// Stop halts the schedule and waits for a running tick to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.log.Info().Msg("price refresher stopped")
}
