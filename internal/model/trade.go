package model

import "time"

type TradingLog struct {
	ID        int64       `json:"id"`
	Ticker    string      `json:"ticker"`
	Action    TradeAction `json:"action"`
	Price     float64     `json:"price"`
	Timestamp time.Time   `json:"timestamp"`
	Status    TradeStatus `json:"status,omitempty"`
}

type ProfitStats struct {
	RealizedProfit float64 `json:"realizedProfit"`
}

type Asset struct {
	AccountNo   string       `json:"accountNo,omitempty"`
	TotalAsset  float64      `json:"totalAsset"`
	USDDeposit  float64      `json:"usdDeposit"`
	OwnedStocks []OwnedStock `json:"ownedStocks"`
}

type OwnedStock struct {
	StockCode    string  `json:"stockCode"`
	StockName    string  `json:"stockName"`
	Quantity     int     `json:"quantity"`
	AveragePrice float64 `json:"averagePrice"`
	CurrentPrice float64 `json:"currentPrice"`
	ProfitRate   float64 `json:"profitRate"`
}
