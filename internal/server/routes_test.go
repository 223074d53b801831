package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ai-stock-trading/dashboard/internal/admin"
	"github.com/ai-stock-trading/dashboard/internal/backend"
	"github.com/ai-stock-trading/dashboard/internal/config"
	"github.com/ai-stock-trading/dashboard/internal/dashboard"
	"github.com/ai-stock-trading/dashboard/internal/logger"
	"github.com/ai-stock-trading/dashboard/internal/model"
	"github.com/ai-stock-trading/dashboard/internal/session"
	"github.com/ai-stock-trading/dashboard/internal/settings"
)

// fakeTradingBackend answers just enough endpoints for the control
// surface to exercise its routes.
func fakeTradingBackend(t *testing.T) *httptest.Server {
	t.Helper()

	writeOK := func(w http.ResponseWriter, data any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.Response[any]{Success: true, Data: data})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/users", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, []model.User{{ID: 1, Username: "alice", Status: model.UserActive, Role: model.RoleAdmin}})
	})
	mux.HandleFunc("GET /api/trading-target", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, []model.Stock{})
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.Response[any]{Success: true, Message: "registered, awaiting approval"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestAPI(t *testing.T, role model.Role) *API {
	t.Helper()

	backendSrv := fakeTradingBackend(t)

	l, loggerSync, err := logger.NewZapLogger(logger.Error)
	if err != nil {
		t.Fatalf("can't init logger: %v", err)
	}
	t.Cleanup(loggerSync)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Set("tok", role); err != nil {
		t.Fatalf("set session: %v", err)
	}

	client := backend.NewClient(backendSrv.URL, store, l)
	cfg := config.DashboardConfig{
		BackendAddress:       backendSrv.URL,
		RefreshInterval:      time.Hour,
		TrainingPollInterval: time.Hour,
	}
	dash := dashboard.New(client, store, cfg, l)

	return NewAPI(client, dash, settings.NewService(client, l), admin.NewService(client, l), store, NewHub(l), l)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestAPI(t, model.RoleUser).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("body not enveloped: %s", rec.Body.String())
	}
}

func TestUserRoutesRequireAdminRole(t *testing.T) {
	router := newTestAPI(t, model.RoleUser).Router()

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/users", nil),
		httptest.NewRequest(http.MethodPost, "/api/users/2/approve", nil),
		httptest.NewRequest(http.MethodDelete, "/api/users/2", nil),
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s status = %d, want 403", req.Method, req.URL.Path, rec.Code)
		}
	}
}

func TestUserRoutesPassForAdmin(t *testing.T) {
	router := newTestAPI(t, model.RoleAdmin).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alice") {
		t.Errorf("user list missing from body: %s", rec.Body.String())
	}
}

func TestToggleTradingUnknownID(t *testing.T) {
	router := newTestAPI(t, model.RoleUser).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/targets/99/trading?active=true", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for an id outside the watch-list", rec.Code)
	}
}

func TestRegisterRoute(t *testing.T) {
	router := newTestAPI(t, model.RoleUser).Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"username":"carol","password":"secret","confirmPassword":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "registered, awaiting approval") {
		t.Errorf("backend message missing from body: %s", rec.Body.String())
	}
}

func TestRegisterRouteRejectsInvalidInput(t *testing.T) {
	router := newTestAPI(t, model.RoleUser).Router()

	for _, body := range []string{
		`{"username":"abc","password":"secret","confirmPassword":"secret"}`,
		`{"username":"carol","password":"abc","confirmPassword":"abc"}`,
		`{"username":"carol","password":"secret","confirmPassword":"other"}`,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestSummaryPayload(t *testing.T) {
	ts := time.Date(2025, 6, 1, 9, 30, 5, 0, time.Local)
	snap := dashboard.Snapshot{
		ProfitStats: model.ProfitStats{RealizedProfit: 12.3},
		Asset: model.Asset{
			USDDeposit: 1234.5,
			TotalAsset: 12345678,
			OwnedStocks: []model.OwnedStock{
				{StockName: "Apple", Quantity: 3, ProfitRate: 1.234},
				{StockName: "Tesla", Quantity: 1, ProfitRate: -0.4},
			},
		},
		Logs: []model.TradingLog{{Ticker: "AAPL", Action: model.ActionBuy, Timestamp: ts}},
	}

	out := summaryPayload(snap)

	if out["realizedProfit"] != "+$12.30" || out["usdDeposit"] != "$1,234.50" || out["totalAsset"] != "₩12,345,678" {
		t.Errorf("cards = %v/%v/%v", out["realizedProfit"], out["usdDeposit"], out["totalAsset"])
	}
	if out["lastTradeAt"] != "09:30:05" {
		t.Errorf("lastTradeAt = %v, want 09:30:05", out["lastTradeAt"])
	}

	positions, ok := out["positions"].([]gin.H)
	if !ok || len(positions) != 2 {
		t.Fatalf("positions = %v", out["positions"])
	}
	if positions[0]["profitRate"] != "+1.23%" || positions[1]["profitRate"] != "-0.40%" {
		t.Errorf("profit rates = %v/%v", positions[0]["profitRate"], positions[1]["profitRate"])
	}

	if _, ok := summaryPayload(dashboard.Snapshot{})["lastTradeAt"]; ok {
		t.Errorf("empty log must omit lastTradeAt")
	}
}

func TestAddTargetRejectsBlankTicker(t *testing.T) {
	router := newTestAPI(t, model.RoleUser).Router()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/targets", strings.NewReader(`{"ticker":"   ","brokerId":null}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a blank ticker", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "empty ticker") {
		t.Errorf("body = %s, want the validation message", rec.Body.String())
	}
}
