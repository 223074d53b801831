package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ai-stock-trading/dashboard/internal/model"
)

// Every mutation below is request-then-refetch: nothing is applied
// optimistically, so a failure leaves prior state untouched and only
// the backend's message needs surfacing.

func (d *Dashboard) AddTicker(ctx context.Context, ticker string, brokerID *int64) error {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return fmt.Errorf("empty ticker")
	}
	if err := d.client.AddTarget(ctx, ticker, brokerID); err != nil {
		return err
	}
	d.refreshStocks(ctx)
	return nil
}

func (d *Dashboard) RemoveTicker(ctx context.Context, id int64) error {
	if err := d.client.DeleteTarget(ctx, id); err != nil {
		return err
	}
	d.refreshStocks(ctx)
	return nil
}

func (d *Dashboard) ToggleTrading(ctx context.Context, ticker string, active bool) error {
	if err := d.client.SetTrading(ctx, ticker, active); err != nil {
		return err
	}
	d.refreshStocks(ctx)
	return nil
}

func (d *Dashboard) SaveThresholds(ctx context.Context, id int64, update model.UpdateTargetRequest) error {
	if err := d.client.UpdateTarget(ctx, id, update); err != nil {
		return err
	}
	d.refreshStocks(ctx)
	return nil
}

func (d *Dashboard) TrainModel(ctx context.Context, ticker string) error {
	if err := d.client.TrainModel(ctx, ticker); err != nil {
		return err
	}
	d.refreshStocks(ctx)
	return nil
}

func (d *Dashboard) ResetTraining(ctx context.Context, ticker string) error {
	if err := d.client.ResetTraining(ctx, ticker); err != nil {
		return err
	}
	d.refreshStocks(ctx)
	return nil
}

func (d *Dashboard) TrainingLogs(ctx context.Context, ticker string) (string, error) {
	return d.client.TrainingLogs(ctx, ticker)
}

// BulkResult summarizes a fan-out action; partial failures are counted,
// never escalated.
type BulkResult struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// StopAllTrading turns trading off for every active ticker. Requests
// are best-effort: all of them fire regardless of earlier failures.
// One watch-list refresh follows the whole batch.
func (d *Dashboard) StopAllTrading(ctx context.Context) BulkResult {
	d.mu.RLock()
	var tickers []string
	for _, s := range d.snap.Stocks {
		if s.IsTrading {
			tickers = append(tickers, s.Ticker)
		}
	}
	d.mu.RUnlock()

	res := d.fanOut(ctx, tickers, func(ctx context.Context, ticker string) error {
		return d.client.SetTrading(ctx, ticker, false)
	})
	d.refreshStocks(ctx)
	return res
}

// DeleteAllTrained wipes the trained data of every COMPLETED or FAILED
// ticker, tolerating individual failures, then refreshes once.
func (d *Dashboard) DeleteAllTrained(ctx context.Context) BulkResult {
	d.mu.RLock()
	var tickers []string
	for _, s := range d.snap.Stocks {
		if s.TrainingStatus == model.TrainingCompleted || s.TrainingStatus == model.TrainingFailed {
			tickers = append(tickers, s.Ticker)
		}
	}
	d.mu.RUnlock()

	if len(tickers) == 0 {
		return BulkResult{}
	}

	res := d.fanOut(ctx, tickers, d.client.ResetTraining)
	d.refreshStocks(ctx)
	return res
}

func (d *Dashboard) fanOut(ctx context.Context, tickers []string, call func(context.Context, string) error) BulkResult {
	var failed atomic.Int64
	var wg sync.WaitGroup
	for _, ticker := range tickers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := call(ctx, ticker); err != nil {
				failed.Add(1)
				d.logger.Errorf("%s: bulk request failed for %s", err, ticker)
			}
		}()
	}
	wg.Wait()

	f := int(failed.Load())
	return BulkResult{Total: len(tickers), Succeeded: len(tickers) - f, Failed: f}
}
