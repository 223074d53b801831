package backend

import (
	"context"
	"strconv"

	"github.com/ai-stock-trading/dashboard/internal/model"
)

const (
	_settingsURL     = "/api/settings"
	_tradingHoursURL = "/api/settings/trading-hours"
	_activeBrokerURL = "/api/settings/active-broker"
	_brokersURL      = "/api/settings/brokers"
)

func (c *Client) GetSettings(ctx context.Context) (model.UserSettings, error) {
	req := c.r(ctx).
		SetResult(&model.Response[model.UserSettings]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Get(_settingsURL)
	return decode[model.UserSettings](c, resp, err, "settings")
}

func (c *Client) SaveTradingHours(ctx context.Context, start, end string) error {
	req := c.r(ctx).
		SetBody(model.TradingHoursRequest{StartTime: start, EndTime: end}).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Post(_tradingHoursURL)
	_, err = decode[any](c, resp, err, "trading hours")
	return err
}

func (c *Client) SetActiveBroker(ctx context.Context, id int64) error {
	req := c.r(ctx).
		SetBody(model.ActiveBrokerRequest{BrokerInfoID: id}).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Post(_activeBrokerURL)
	_, err = decode[any](c, resp, err, "active broker")
	return err
}

func (c *Client) AddBroker(ctx context.Context, broker model.AddBrokerRequest) error {
	req := c.r(ctx).
		SetBody(broker).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Post(_brokersURL)
	_, err = decode[any](c, resp, err, "add broker")
	return err
}

func (c *Client) DeleteBroker(ctx context.Context, id int64) error {
	req := c.r(ctx).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Delete(_brokersURL + "/" + strconv.FormatInt(id, 10))
	_, err = decode[any](c, resp, err, "delete broker")
	return err
}
