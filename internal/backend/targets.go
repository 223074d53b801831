package backend

import (
	"context"
	"strconv"

	"github.com/ai-stock-trading/dashboard/internal/model"
)

const _targetsURL = "/api/trading-target"

func (c *Client) ListTargets(ctx context.Context) ([]model.Stock, error) {
	req := c.r(ctx).
		SetResult(&model.Response[[]model.Stock]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Get(_targetsURL)
	return decode[[]model.Stock](c, resp, err, "list targets")
}

func (c *Client) AddTarget(ctx context.Context, ticker string, brokerID *int64) error {
	req := c.r(ctx).
		SetBody(model.AddTargetRequest{Ticker: ticker, BrokerID: brokerID}).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Post(_targetsURL)
	_, err = decode[any](c, resp, err, "add target")
	return err
}

func (c *Client) UpdateTarget(ctx context.Context, id int64, update model.UpdateTargetRequest) error {
	req := c.r(ctx).
		SetBody(update).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Put(_targetsURL + "/" + strconv.FormatInt(id, 10))
	_, err = decode[any](c, resp, err, "update target")
	return err
}

// SetTrading flips automated trading for one ticker. The flag travels
// as a query parameter, not a body.
func (c *Client) SetTrading(ctx context.Context, ticker string, active bool) error {
	req := c.r(ctx).
		SetQueryParam("active", strconv.FormatBool(active)).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Patch(_targetsURL + "/" + ticker + "/trading")
	_, err = decode[any](c, resp, err, "set trading")
	return err
}

func (c *Client) DeleteTarget(ctx context.Context, id int64) error {
	req := c.r(ctx).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Delete(_targetsURL + "/" + strconv.FormatInt(id, 10))
	_, err = decode[any](c, resp, err, "delete target")
	return err
}
