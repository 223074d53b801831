// Package settings manages broker credentials and the trading-hours
// window for the authenticated user.
package settings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ai-stock-trading/dashboard/internal/backend"
	"github.com/ai-stock-trading/dashboard/internal/logger"
	"github.com/ai-stock-trading/dashboard/internal/model"
)

type Service struct {
	client *backend.Client
	logger logger.Logger

	mu      sync.RWMutex
	current model.UserSettings
}

func NewService(client *backend.Client, logger logger.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Refresh pulls the full settings payload and replaces the local copy.
func (s *Service) Refresh(ctx context.Context) (model.UserSettings, error) {
	settings, err := s.client.GetSettings(ctx)
	if err != nil {
		return model.UserSettings{}, fmt.Errorf("%w: can't refresh settings", err)
	}

	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()
	return settings, nil
}

func (s *Service) Current() model.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SaveTradingHours stores the HH:MM window inside which the backend is
// allowed to trade.
func (s *Service) SaveTradingHours(ctx context.Context, start, end string) error {
	for _, v := range []string{start, end} {
		if _, err := time.Parse("15:04", v); err != nil {
			return fmt.Errorf("invalid trading hour %q, want HH:MM", v)
		}
	}

	if err := s.client.SaveTradingHours(ctx, start, end); err != nil {
		return err
	}

	s.mu.Lock()
	s.current.TradingStartTime = start
	s.current.TradingEndTime = end
	s.mu.Unlock()
	return nil
}

// SetActiveBroker marks one credential set active. The local copy is
// updated optimistically on a successful request; there is no
// confirmation round trip, the next full Refresh corrects any drift.
func (s *Service) SetActiveBroker(ctx context.Context, id int64) error {
	if err := s.client.SetActiveBroker(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.current.ActiveBrokerID = &id
	s.mu.Unlock()
	return nil
}

// AddBroker registers a credential set and refetches the full payload.
func (s *Service) AddBroker(ctx context.Context, broker model.AddBrokerRequest) error {
	if err := s.client.AddBroker(ctx, broker); err != nil {
		return err
	}
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Errorf("%s: can't refetch settings after add", err)
	}
	return nil
}

// DeleteBroker removes a credential set and refetches the full payload.
func (s *Service) DeleteBroker(ctx context.Context, id int64) error {
	if err := s.client.DeleteBroker(ctx, id); err != nil {
		return err
	}
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Errorf("%s: can't refetch settings after delete", err)
	}
	return nil
}
