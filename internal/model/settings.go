package model

type BrokerInfo struct {
	ID            int64      `json:"id"`
	BrokerType    BrokerType `json:"brokerType"`
	AccountNumber string     `json:"accountNumber,omitempty"`
}

// UserSettings is the full settings payload scoped to the caller.
type UserSettings struct {
	BrokerInfos         []BrokerInfo `json:"brokerInfos"`
	ActiveBrokerID      *int64       `json:"activeBrokerId"`
	TradingStartTime    string       `json:"tradingStartTime,omitempty"`
	TradingEndTime      string       `json:"tradingEndTime,omitempty"`
	NotificationEnabled bool         `json:"notificationEnabled,omitempty"`
	TelegramBotToken    string       `json:"telegramBotToken,omitempty"`
	TelegramChatID      string       `json:"telegramChatId,omitempty"`
}

type AddBrokerRequest struct {
	BrokerType    BrokerType `json:"brokerType"`
	AppKey        string     `json:"appKey"`
	AppSecret     string     `json:"appSecret"`
	AccountNumber string     `json:"accountNumber"`
}

type TradingHoursRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type ActiveBrokerRequest struct {
	BrokerInfoID int64 `json:"brokerInfoId"`
}
