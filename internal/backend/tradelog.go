package backend

import (
	"context"

	"github.com/ai-stock-trading/dashboard/internal/model"
)

const (
	_recentLogsURL  = "/api/trade-log/recent"
	_profitStatsURL = "/api/trade-log/stats"
	_assetURL       = "/api/asset"
)

func (c *Client) RecentLogs(ctx context.Context) ([]model.TradingLog, error) {
	req := c.r(ctx).
		SetResult(&model.Response[[]model.TradingLog]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Get(_recentLogsURL)
	return decode[[]model.TradingLog](c, resp, err, "recent logs")
}

func (c *Client) ProfitStats(ctx context.Context) (model.ProfitStats, error) {
	req := c.r(ctx).
		SetResult(&model.Response[model.ProfitStats]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Get(_profitStatsURL)
	return decode[model.ProfitStats](c, resp, err, "profit stats")
}

func (c *Client) Asset(ctx context.Context) (model.Asset, error) {
	req := c.r(ctx).
		SetResult(&model.Response[model.Asset]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Get(_assetURL)
	return decode[model.Asset](c, resp, err, "asset")
}
