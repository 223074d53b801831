package dashboard

import (
	"context"
	"sync"

	"github.com/ai-stock-trading/dashboard/internal/model"
)

// refreshAll is the on-start fetch: broker-connection status, the
// watch-list, profit stats, balances and the recent log, each issued
// independently. A failure in one never aborts the others.
func (d *Dashboard) refreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, fetch := range []func(context.Context){
		d.checkBrokerConnection,
		d.refreshStocks,
		d.refreshProfitStats,
		d.refreshAsset,
		d.refreshLogs,
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetch(ctx)
		}()
	}
	wg.Wait()
}

// refreshCycle is the steady-state 20s tick: log, watch-list (with the
// AI status re-merged) and balances.
func (d *Dashboard) refreshCycle(ctx context.Context) {
	var wg sync.WaitGroup
	for _, fetch := range []func(context.Context){
		d.refreshLogs,
		d.refreshStocks,
		d.refreshAsset,
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetch(ctx)
		}()
	}
	wg.Wait()
}

func (d *Dashboard) checkBrokerConnection(ctx context.Context) {
	settings, err := d.client.GetSettings(ctx)
	if err != nil {
		d.logger.Errorf("%s: can't fetch settings", err)
		d.update(func(s *Snapshot) { s.BrokerConnected = false })
		return
	}
	d.update(func(s *Snapshot) {
		s.BrokerConnected = settings.ActiveBrokerID != nil
		s.BrokerInfos = settings.BrokerInfos
	})
}

func (d *Dashboard) refreshLogs(ctx context.Context) {
	logs, err := d.client.RecentLogs(ctx)
	if err != nil {
		d.logger.Errorf("%s: can't fetch trade logs", err)
		logs = nil
	}
	d.update(func(s *Snapshot) { s.Logs = logs })
}

func (d *Dashboard) refreshProfitStats(ctx context.Context) {
	stats, err := d.client.ProfitStats(ctx)
	if err != nil {
		d.logger.Errorf("%s: can't fetch profit stats", err)
		stats = model.ProfitStats{}
	}
	d.update(func(s *Snapshot) { s.ProfitStats = stats })
}

func (d *Dashboard) refreshAsset(ctx context.Context) {
	asset, err := d.client.Asset(ctx)
	if err != nil {
		d.logger.Errorf("%s: can't fetch asset", err)
		asset = model.Asset{}
	}
	d.update(func(s *Snapshot) { s.Asset = asset })
}

// refreshStocks re-fetches the watch-list and merges the per-ticker AI
// training status in. A ticker whose status fetch failed reads as
// PENDING until a later poll says otherwise.
func (d *Dashboard) refreshStocks(ctx context.Context) {
	stocks, err := d.client.ListTargets(ctx)
	if err != nil {
		d.logger.Errorf("%s: can't fetch watch-list", err)
		d.update(func(s *Snapshot) { s.Stocks = nil })
		d.syncTrainingPoll()
		return
	}

	tickers := make([]string, len(stocks))
	for i, s := range stocks {
		tickers[i] = s.Ticker
	}
	statuses := d.fetchStatuses(ctx, tickers)

	for i := range stocks {
		if st, ok := statuses[stocks[i].Ticker]; ok && st != "" {
			stocks[i].TrainingStatus = st
		} else {
			stocks[i].TrainingStatus = model.TrainingPending
		}
	}

	d.update(func(s *Snapshot) { s.Stocks = stocks })
	d.syncTrainingPoll()
}

// fetchStatuses fans out one training-status request per ticker and
// waits for the whole batch. A failed fetch maps to an empty status
// instead of aborting the batch.
func (d *Dashboard) fetchStatuses(ctx context.Context, tickers []string) map[string]model.TrainingStatus {
	results := make([]model.TrainingStatus, len(tickers))

	var wg sync.WaitGroup
	for i, ticker := range tickers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := d.client.TrainingStatus(ctx, ticker)
			if err != nil {
				d.logger.Debugf("%s: can't fetch training status for %s", err, ticker)
				return
			}
			results[i] = model.TrainingStatus(status.Status)
		}()
	}
	wg.Wait()

	statuses := make(map[string]model.TrainingStatus, len(tickers))
	for i, ticker := range tickers {
		statuses[ticker] = results[i]
	}
	return statuses
}
