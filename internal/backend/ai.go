package backend

import (
	"context"

	"github.com/ai-stock-trading/dashboard/internal/model"
)

const _aiURL = "/api/ai"

// TrainModel asks the AI bridge to start a training job for the ticker.
// Completion is observed through TrainingStatus polling, never pushed.
func (c *Client) TrainModel(ctx context.Context, ticker string) error {
	req := c.r(ctx).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Post(_aiURL + "/" + ticker + "/train")
	_, err = decode[any](c, resp, err, "train model")
	return err
}

// TrainingStatus queries one ticker's job state. Calls are rate-limited
// because refresh cycles fan this out over the whole watch-list.
func (c *Client) TrainingStatus(ctx context.Context, ticker string) (model.AiStatus, error) {
	c.aiLimiter.Take()

	req := c.r(ctx).
		SetResult(&model.Response[model.AiStatus]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Post(_aiURL + "/" + ticker + "/training-status")
	return decode[model.AiStatus](c, resp, err, "training status")
}

func (c *Client) TrainingLogs(ctx context.Context, ticker string) (string, error) {
	req := c.r(ctx).
		SetResult(&model.Response[string]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Get(_aiURL + "/" + ticker + "/logs")
	return decode[string](c, resp, err, "training logs")
}

// ResetTraining wipes the ticker's trained model and history.
func (c *Client) ResetTraining(ctx context.Context, ticker string) error {
	req := c.r(ctx).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Delete(_aiURL + "/" + ticker + "/train")
	_, err = decode[any](c, resp, err, "reset training")
	return err
}
