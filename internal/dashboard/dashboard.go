// Package dashboard keeps the main-screen state approximately fresh
// without backend push support: a fixed 20s refresh of watch-list,
// balances and trade log, plus a 10s training-status poll that exists
// only while at least one ticker is mid-training.
package dashboard

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ai-stock-trading/dashboard/internal/backend"
	"github.com/ai-stock-trading/dashboard/internal/config"
	"github.com/ai-stock-trading/dashboard/internal/logger"
	"github.com/ai-stock-trading/dashboard/internal/model"
	"github.com/ai-stock-trading/dashboard/internal/session"
)

var ErrSessionExpired = errors.New("session expired")

// Snapshot is the merged view state. Both timers overwrite its fields
// with their own latest fetch, last writer wins per field.
type Snapshot struct {
	Stocks          []model.Stock      `json:"stocks"`
	Logs            []model.TradingLog `json:"logs"`
	ProfitStats     model.ProfitStats  `json:"profitStats"`
	Asset           model.Asset        `json:"asset"`
	BrokerInfos     []model.BrokerInfo `json:"brokerInfos"`
	BrokerConnected bool               `json:"brokerConnected"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Stocks = slices.Clone(s.Stocks)
	out.Logs = slices.Clone(s.Logs)
	out.BrokerInfos = slices.Clone(s.BrokerInfos)
	out.Asset.OwnedStocks = slices.Clone(s.Asset.OwnedStocks)
	return out
}

type Dashboard struct {
	client *backend.Client
	store  *session.Store
	logger logger.Logger

	refreshInterval  time.Duration
	trainingInterval time.Duration

	onUpdate func(Snapshot)

	mu   sync.RWMutex
	snap Snapshot

	trainingMu   sync.Mutex
	runCtx       context.Context
	trainingStop context.CancelFunc
}

func New(client *backend.Client, store *session.Store, cfg config.DashboardConfig, logger logger.Logger) *Dashboard {
	return &Dashboard{
		client:           client,
		store:            store,
		logger:           logger,
		refreshInterval:  cfg.RefreshInterval,
		trainingInterval: cfg.TrainingPollInterval,
		runCtx:           context.Background(),
	}
}

// OnUpdate registers a hook receiving a copy of the snapshot after each
// state change. Set it before Run.
func (d *Dashboard) OnUpdate(fn func(Snapshot)) {
	d.onUpdate = fn
}

// Snapshot returns a copy of the current view state.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snap.clone()
}

// Run blocks until the context is cancelled or the session expires.
// A session-expiry check precedes every refresh tick.
func (d *Dashboard) Run(ctx context.Context) error {
	if d.store.Expired() {
		d.logger.Warnf("session expired on start")
		return ErrSessionExpired
	}

	d.trainingMu.Lock()
	d.runCtx = ctx
	d.trainingMu.Unlock()

	d.refreshAll(ctx)

	ticker := time.NewTicker(d.refreshInterval)
	defer ticker.Stop()
	defer d.stopTrainingPoll()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if d.store.Expired() {
				d.logger.Warnf("session expired, stopping refresh")
				return ErrSessionExpired
			}
			d.refreshCycle(ctx)
		}
	}
}

// update applies a mutation to the snapshot under the write lock and
// hands a copy to the update hook.
func (d *Dashboard) update(apply func(*Snapshot)) {
	d.mu.Lock()
	apply(&d.snap)
	d.snap.UpdatedAt = time.Now()
	snap := d.snap.clone()
	d.mu.Unlock()

	if d.onUpdate != nil {
		d.onUpdate(snap)
	}
}

func (d *Dashboard) hasTraining() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, s := range d.snap.Stocks {
		if s.TrainingStatus == model.TrainingRunning {
			return true
		}
	}
	return false
}

func (d *Dashboard) trainingTickers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var tickers []string
	for _, s := range d.snap.Stocks {
		if s.TrainingStatus == model.TrainingRunning {
			tickers = append(tickers, s.Ticker)
		}
	}
	return tickers
}

// syncTrainingPoll starts the 10s poll when a ticker is mid-training
// and stops it when none is. Both transitions are idempotent: repeated
// calls never schedule a second loop.
func (d *Dashboard) syncTrainingPoll() {
	active := d.hasTraining()

	d.trainingMu.Lock()
	defer d.trainingMu.Unlock()

	switch {
	case active && d.trainingStop == nil:
		ctx, cancel := context.WithCancel(d.runCtx)
		d.trainingStop = cancel
		go d.trainingLoop(ctx)
		d.logger.Infof("training status poll started")
	case !active && d.trainingStop != nil:
		d.trainingStop()
		d.trainingStop = nil
		d.logger.Infof("training status poll stopped")
	}
}

func (d *Dashboard) stopTrainingPoll() {
	d.trainingMu.Lock()
	defer d.trainingMu.Unlock()
	if d.trainingStop != nil {
		d.trainingStop()
		d.trainingStop = nil
	}
}

func (d *Dashboard) trainingActive() bool {
	d.trainingMu.Lock()
	defer d.trainingMu.Unlock()
	return d.trainingStop != nil
}

func (d *Dashboard) trainingLoop(ctx context.Context) {
	ticker := time.NewTicker(d.trainingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.pollTraining(ctx)
		}
	}
}

// pollTraining re-checks only the tickers last seen TRAINING and merges
// the results that moved to another state.
func (d *Dashboard) pollTraining(ctx context.Context) {
	tickers := d.trainingTickers()
	if len(tickers) == 0 {
		d.syncTrainingPoll()
		return
	}

	statuses := d.fetchStatuses(ctx, tickers)

	changed := false
	d.mu.Lock()
	for i := range d.snap.Stocks {
		s := &d.snap.Stocks[i]
		if s.TrainingStatus != model.TrainingRunning {
			continue
		}
		if st, ok := statuses[s.Ticker]; ok && st != "" && st != model.TrainingRunning {
			s.TrainingStatus = st
			changed = true
		}
	}
	var snap Snapshot
	if changed {
		d.snap.UpdatedAt = time.Now()
		snap = d.snap.clone()
	}
	d.mu.Unlock()

	if changed {
		if d.onUpdate != nil {
			d.onUpdate(snap)
		}
		d.syncTrainingPoll()
	}
}
