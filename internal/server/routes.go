package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ai-stock-trading/dashboard/internal/admin"
	"github.com/ai-stock-trading/dashboard/internal/backend"
	"github.com/ai-stock-trading/dashboard/internal/dashboard"
	"github.com/ai-stock-trading/dashboard/internal/logger"
	"github.com/ai-stock-trading/dashboard/internal/model"
	"github.com/ai-stock-trading/dashboard/internal/session"
	"github.com/ai-stock-trading/dashboard/internal/settings"
	"github.com/ai-stock-trading/dashboard/internal/tools"
)

// API wires the local control surface onto the services. Responses use
// the same {success, data, message} envelope as the backend itself.
type API struct {
	client   *backend.Client
	dash     *dashboard.Dashboard
	settings *settings.Service
	admin    *admin.Service
	store    *session.Store
	hub      *Hub
	logger   logger.Logger

	upgrader websocket.Upgrader
}

func NewAPI(client *backend.Client, dash *dashboard.Dashboard, settings *settings.Service, adminSvc *admin.Service, store *session.Store, hub *Hub, logger logger.Logger) *API {
	return &API{
		client:   client,
		dash:     dash,
		settings: settings,
		admin:    adminSvc,
		store:    store,
		hub:      hub,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (a *API) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/api/health", a.getHealth)
	engine.POST("/api/register", a.register)
	engine.GET("/api/dashboard", a.getDashboard)
	engine.GET("/api/dashboard/summary", a.getSummary)
	engine.GET("/ws", a.handleWebSocket)

	targets := engine.Group("/api/targets")
	{
		targets.POST("", a.addTarget)
		targets.DELETE("/:id", a.deleteTarget)
		targets.PATCH("/:id/trading", a.toggleTrading)
		targets.PUT("/:id/thresholds", a.saveThresholds)
	}

	trading := engine.Group("/api/trading")
	{
		trading.POST("/stop-all", a.stopAll)
		trading.POST("/delete-trained", a.deleteTrained)
	}

	ai := engine.Group("/api/ai")
	{
		ai.POST("/:ticker/train", a.train)
		ai.DELETE("/:ticker/train", a.resetTraining)
		ai.GET("/:ticker/logs", a.trainingLogs)
	}

	cfg := engine.Group("/api/settings")
	{
		cfg.GET("", a.getSettings)
		cfg.POST("/trading-hours", a.saveTradingHours)
		cfg.POST("/active-broker", a.setActiveBroker)
		cfg.POST("/brokers", a.addBroker)
		cfg.DELETE("/brokers/:id", a.deleteBroker)
	}

	users := engine.Group("/api/users", a.requireAdmin())
	{
		users.GET("", a.listUsers)
		users.POST("/:id/approve", a.approveUser)
		users.DELETE("/:id", a.deleteUser)
	}

	return engine
}

func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, model.Response[any]{Success: true, Data: data})
}

// fail maps an error to the envelope. Backend-reported messages pass
// through verbatim as a bad-gateway; everything else is a bad request.
func fail(c *gin.Context, err error) {
	status := http.StatusBadRequest
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status = http.StatusBadGateway
	}
	c.JSON(status, model.Response[any]{Success: false, Message: err.Error()})
}

func (a *API) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.store.Role() != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, model.Response[any]{Success: false, Message: "admin role required"})
			return
		}
		c.Next()
	}
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (a *API) getHealth(c *gin.Context) {
	snap := a.dash.Snapshot()
	respond(c, gin.H{
		"status":          "ok",
		"brokerConnected": snap.BrokerConnected,
		"updatedAt":       snap.UpdatedAt,
	})
}

// register creates a pending account; the backend's confirmation
// message travels back in the envelope for the caller to display.
func (a *API) register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	msg, err := a.client.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Response[any]{Success: true, Message: msg})
}

func (a *API) getDashboard(c *gin.Context) {
	respond(c, a.dash.Snapshot())
}

// getSummary renders the balance and profit cards the way the main
// screen displays them.
func (a *API) getSummary(c *gin.Context) {
	respond(c, summaryPayload(a.dash.Snapshot()))
}

func summaryPayload(snap dashboard.Snapshot) gin.H {
	positions := make([]gin.H, 0, len(snap.Asset.OwnedStocks))
	for _, p := range snap.Asset.OwnedStocks {
		positions = append(positions, gin.H{
			"stockName":  p.StockName,
			"quantity":   p.Quantity,
			"profitRate": tools.FormatSignedPercent(p.ProfitRate),
		})
	}

	out := gin.H{
		"realizedProfit": tools.FormatSignedUSD(snap.ProfitStats.RealizedProfit),
		"usdDeposit":     tools.FormatUSD(snap.Asset.USDDeposit),
		"totalAsset":     tools.FormatKRW(snap.Asset.TotalAsset),
		"positions":      positions,
	}
	if len(snap.Logs) > 0 {
		out["lastTradeAt"] = tools.FormatClock(snap.Logs[0].Timestamp)
	}
	return out
}

func (a *API) handleWebSocket(c *gin.Context) {
	conn, err := a.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.logger.Errorf("%s: can't upgrade websocket", err)
		return
	}

	client := &wsClient{
		hub:  a.hub,
		conn: conn,
		send: make(chan []byte, 16),
	}
	select {
	case a.hub.register <- client:
	case <-a.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (a *API) addTarget(c *gin.Context) {
	var req model.AddTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	if err := a.dash.AddTicker(c.Request.Context(), req.Ticker, req.BrokerID); err != nil {
		fail(c, err)
		return
	}
	respond(c, nil)
}

func (a *API) deleteTarget(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}
	if err := a.dash.RemoveTicker(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respond(c, nil)
}

// toggleTrading resolves the entry by id the way the main screen does,
// then flips the flag by ticker against the backend.
func (a *API) toggleTrading(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}
	active, err := strconv.ParseBool(c.Query("active"))
	if err != nil {
		fail(c, err)
		return
	}

	var ticker string
	for _, s := range a.dash.Snapshot().Stocks {
		if s.ID == id {
			ticker = s.Ticker
			break
		}
	}
	if ticker == "" {
		c.JSON(http.StatusNotFound, model.Response[any]{Success: false, Message: "unknown watch-list entry"})
		return
	}

	if err := a.dash.ToggleTrading(c.Request.Context(), ticker, active); err != nil {
		fail(c, err)
		return
	}
	respond(c, nil)
}

func (a *API) saveThresholds(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}
	var req model.UpdateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	if err := a.dash.SaveThresholds(c.Request.Context(), id, req); err != nil {
		fail(c, err)
		return
	}
	respond(c, nil)
}

func (a *API) stopAll(c *gin.Context) {
	respond(c, a.dash.StopAllTrading(c.Request.Context()))
}

func (a *API) deleteTrained(c *gin.Context) {
	respond(c, a.dash.DeleteAllTrained(c.Request.Context()))
}

func (a *API) train(c *gin.Context) {
	if err := a.dash.TrainModel(c.Request.Context(), c.Param("ticker")); err != nil {
		fail(c, err)
		return
	}
	respond(c, nil)
}

func (a *API) resetTraining(c *gin.Context) {
	if err := a.dash.ResetTraining(c.Request.Context(), c.Param("ticker")); err != nil {
		fail(c, err)
		return
	}
	respond(c, nil)
}

func (a *API) trainingLogs(c *gin.Context) {
	logs, err := a.dash.TrainingLogs(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, logs)
}

func (a *API) getSettings(c *gin.Context) {
	current, err := a.settings.Refresh(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, current)
}

func (a *API) saveTradingHours(c *gin.Context) {
	var req model.TradingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	if err := a.settings.SaveTradingHours(c.Request.Context(), req.StartTime, req.EndTime); err != nil {
		fail(c, err)
		return
	}
	respond(c, nil)
}

func (a *API) setActiveBroker(c *gin.Context) {
	var req model.ActiveBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	if err := a.settings.SetActiveBroker(c.Request.Context(), req.BrokerInfoID); err != nil {
		fail(c, err)
		return
	}
	respond(c, a.settings.Current())
}

func (a *API) addBroker(c *gin.Context) {
	var req model.AddBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	if err := a.settings.AddBroker(c.Request.Context(), req); err != nil {
		fail(c, err)
		return
	}
	respond(c, a.settings.Current())
}

func (a *API) deleteBroker(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}
	if err := a.settings.DeleteBroker(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respond(c, a.settings.Current())
}

func (a *API) listUsers(c *gin.Context) {
	users, err := a.admin.Refresh(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, users)
}

func (a *API) approveUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}
	if err := a.admin.Approve(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respond(c, a.admin.Users())
}

func (a *API) deleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}
	if err := a.admin.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respond(c, a.admin.Users())
}
