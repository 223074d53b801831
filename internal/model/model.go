// Package model mirrors the entities of the trading backend's JSON API.
// Nothing here is owned by this client: every record is a transient copy
// of a backend response.
package model

// Response is the backend's envelope for every endpoint.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

type UserStatus string

const (
	UserPending   UserStatus = "PENDING"
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

type BrokerType string

const (
	BrokerKIS BrokerType = "KIS"
	BrokerLS  BrokerType = "LS"
)

type TrainingStatus string

const (
	TrainingPending   TrainingStatus = "PENDING"
	TrainingRunning   TrainingStatus = "TRAINING"
	TrainingCompleted TrainingStatus = "COMPLETED"
	TrainingFailed    TrainingStatus = "FAILED"
)

type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
	ActionHold TradeAction = "HOLD"
)

type TradeStatus string

const (
	TradeSuccess             TradeStatus = "SUCCESS"
	TradeInsufficientBalance TradeStatus = "INSUFFICIENT_BALANCE"
	TradeInsufficientStock   TradeStatus = "INSUFFICIENT_STOCK"
	TradeFailed              TradeStatus = "FAILED"
)
