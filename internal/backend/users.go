package backend

import (
	"context"
	"strconv"

	"github.com/ai-stock-trading/dashboard/internal/model"
)

const _usersURL = "/api/auth/users"

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	req := c.r(ctx).
		SetResult(&model.Response[[]model.User]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Get(_usersURL)
	return decode[[]model.User](c, resp, err, "list users")
}

func (c *Client) ApproveUser(ctx context.Context, id int64) error {
	req := c.r(ctx).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Post(_usersURL + "/" + strconv.FormatInt(id, 10) + "/approve")
	_, err = decode[any](c, resp, err, "approve user")
	return err
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	req := c.r(ctx).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Delete(_usersURL + "/" + strconv.FormatInt(id, 10))
	_, err = decode[any](c, resp, err, "delete user")
	return err
}
