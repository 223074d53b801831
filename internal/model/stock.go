package model

// Stock is a watch-list entry. TrainingStatus is derived on the client
// from the per-ticker AI status endpoint and never sent back.
type Stock struct {
	ID                     int64          `json:"id"`
	Ticker                 string         `json:"ticker"`
	IsTrading              bool           `json:"isTrading"`
	BuyThreshold           int            `json:"buyThreshold"`
	SellThreshold          int            `json:"sellThreshold"`
	StopLossPercentage     string         `json:"stopLossPercentage"`
	BaseTicker             string         `json:"baseTicker,omitempty"`
	IsInverse              bool           `json:"isInverse"`
	TrailingStopPercentage string         `json:"trailingStopPercentage"`
	TrailingStopEnabled    bool           `json:"trailingStopEnabled"`
	TrailingWindowMinutes  int            `json:"trailingWindowMinutes"`
	BrokerID               *int64         `json:"brokerId"`
	HoldingQuantity        int            `json:"holdingQuantity"`
	TrainingStatus         TrainingStatus `json:"trainingStatus,omitempty"`
}

// AiStatus is the AI bridge's view of one ticker's training job.
type AiStatus struct {
	ID        int64  `json:"id,omitempty"`
	Ticker    string `json:"ticker"`
	TrainDate string `json:"trainDate,omitempty"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// AddTargetRequest registers a ticker. A nil BrokerID is serialized as
// an explicit null, which tells the backend to use the active broker.
type AddTargetRequest struct {
	Ticker   string `json:"ticker"`
	BrokerID *int64 `json:"brokerId"`
}

// UpdateTargetRequest carries the full threshold configuration of one
// watch-list entry. Percentages travel as strings, matching the backend.
type UpdateTargetRequest struct {
	BuyThreshold           int    `json:"buyThreshold"`
	SellThreshold          int    `json:"sellThreshold"`
	StopLossPercentage     string `json:"stopLossPercentage"`
	BaseTicker             string `json:"baseTicker"`
	IsInverse              bool   `json:"isInverse"`
	TrailingStopPercentage string `json:"trailingStopPercentage"`
	TrailingStopEnabled    bool   `json:"trailingStopEnabled"`
	TrailingWindowMinutes  int    `json:"trailingWindowMinutes"`
	BrokerID               *int64 `json:"brokerId"`
	HoldingQuantity        int    `json:"holdingQuantity"`
}
