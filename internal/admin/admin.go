// Package admin covers account management: list, approve, delete.
// Every mutation refetches the full list instead of patching it.
package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/ai-stock-trading/dashboard/internal/backend"
	"github.com/ai-stock-trading/dashboard/internal/logger"
	"github.com/ai-stock-trading/dashboard/internal/model"
)

type Service struct {
	client *backend.Client
	logger logger.Logger

	mu    sync.RWMutex
	users []model.User
}

func NewService(client *backend.Client, logger logger.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

func (s *Service) Refresh(ctx context.Context) ([]model.User, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: can't refresh users", err)
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return users, nil
}

func (s *Service) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// Approve moves a PENDING account to ACTIVE.
func (s *Service) Approve(ctx context.Context, id int64) error {
	if err := s.client.ApproveUser(ctx, id); err != nil {
		return err
	}
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Errorf("%s: can't refetch users after approve", err)
	}
	return nil
}

// Delete removes an account in any status.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return err
	}
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Errorf("%s: can't refetch users after delete", err)
	}
	return nil
}
