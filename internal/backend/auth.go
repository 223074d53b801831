package backend

import (
	"context"
	"errors"

	"github.com/ai-stock-trading/dashboard/internal/model"
)

const (
	_loginURL    = "/api/auth/login"
	_registerURL = "/api/auth/register"

	_minUsernameLen = 4
	_minPasswordLen = 4
)

// Validation failures are decided on the client; the request is never
// sent when one of these applies.
var (
	ErrUsernameTooShort = errors.New("username must be at least 4 characters")
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Login exchanges credentials for a token and, on success, records the
// session (token, role, issue time) and re-arms the 401 teardown guard.
// A backend rejection stores nothing and surfaces the backend message.
func (c *Client) Login(ctx context.Context, username, password string) error {
	req := c.c.R().
		SetContext(ctx).
		SetBody(model.Credentials{Username: username, Password: password}).
		SetResult(&model.Response[model.LoginResponse]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Post(_loginURL)
	login, err := decode[model.LoginResponse](c, resp, err, "login")
	if err != nil {
		return err
	}

	if err := c.session.Set(login.Token, login.Role); err != nil {
		return err
	}
	c.rearmUnauthorized()

	c.logger.Infof("logged in as role %s", login.Role)
	return nil
}

// Register creates a pending account. Input is validated first:
// username and password length, and the password confirmation.
func (c *Client) Register(ctx context.Context, username, password, confirm string) (string, error) {
	if len(username) < _minUsernameLen {
		return "", ErrUsernameTooShort
	}
	if len(password) < _minPasswordLen {
		return "", ErrPasswordTooShort
	}
	if password != confirm {
		return "", ErrPasswordMismatch
	}

	req := c.c.R().
		SetContext(ctx).
		SetBody(model.Credentials{Username: username, Password: password}).
		SetResult(&model.Response[any]{}).
		SetError(&model.Response[any]{})

	resp, err := req.Post(_registerURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		if envelope, ok := resp.Error().(*model.Response[any]); ok && envelope.Message != "" {
			return "", &APIError{Message: envelope.Message, Code: envelope.Code, StatusCode: resp.StatusCode()}
		}
		return "", &APIError{StatusCode: resp.StatusCode()}
	}

	envelope := resp.Result().(*model.Response[any])
	return envelope.Message, nil
}
