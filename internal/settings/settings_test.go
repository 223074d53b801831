package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/ai-stock-trading/dashboard/internal/backend"
	"github.com/ai-stock-trading/dashboard/internal/logger"
	"github.com/ai-stock-trading/dashboard/internal/model"
	"github.com/ai-stock-trading/dashboard/internal/session"
)

type fakeSettings struct {
	mu       sync.Mutex
	current  model.UserSettings
	nextID   int64
	getCalls int
}

func (f *fakeSettings) handler() http.Handler {
	writeOK := func(w http.ResponseWriter, data any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.Response[any]{Success: true, Data: data})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/settings", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.getCalls++
		current := f.current
		f.mu.Unlock()
		writeOK(w, current)
	})
	mux.HandleFunc("POST /api/settings/trading-hours", func(w http.ResponseWriter, r *http.Request) {
		var req model.TradingHoursRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.current.TradingStartTime = req.StartTime
		f.current.TradingEndTime = req.EndTime
		f.mu.Unlock()
		writeOK(w, nil)
	})
	mux.HandleFunc("POST /api/settings/active-broker", func(w http.ResponseWriter, r *http.Request) {
		var req model.ActiveBrokerRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.current.ActiveBrokerID = &req.BrokerInfoID
		f.mu.Unlock()
		writeOK(w, nil)
	})
	mux.HandleFunc("POST /api/settings/brokers", func(w http.ResponseWriter, r *http.Request) {
		var req model.AddBrokerRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.nextID++
		f.current.BrokerInfos = append(f.current.BrokerInfos, model.BrokerInfo{
			ID:            f.nextID,
			BrokerType:    req.BrokerType,
			AccountNumber: req.AccountNumber,
		})
		f.mu.Unlock()
		writeOK(w, nil)
	})
	mux.HandleFunc("DELETE /api/settings/brokers/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		kept := f.current.BrokerInfos[:0]
		for _, b := range f.current.BrokerInfos {
			if b.ID != id {
				kept = append(kept, b)
			}
		}
		f.current.BrokerInfos = kept
		f.mu.Unlock()
		writeOK(w, nil)
	})
	return mux
}

func newTestService(t *testing.T, fake *fakeSettings) *Service {
	t.Helper()

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	l, loggerSync, err := logger.NewZapLogger(logger.Error)
	if err != nil {
		t.Fatalf("can't init logger: %v", err)
	}
	t.Cleanup(loggerSync)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Set("tok", model.RoleUser); err != nil {
		t.Fatalf("set session: %v", err)
	}
	return NewService(backend.NewClient(srv.URL, store, l), l)
}

func TestSaveTradingHoursValidation(t *testing.T) {
	svc := newTestService(t, &fakeSettings{})
	ctx := context.Background()

	for _, bad := range []struct{ start, end string }{
		{"9:99", "16:00"},
		{"morning", "16:00"},
		{"09:30", ""},
	} {
		if err := svc.SaveTradingHours(ctx, bad.start, bad.end); err == nil {
			t.Errorf("SaveTradingHours(%q, %q) must fail", bad.start, bad.end)
		}
	}

	if err := svc.SaveTradingHours(ctx, "09:30", "16:00"); err != nil {
		t.Fatalf("save trading hours: %v", err)
	}
	current := svc.Current()
	if current.TradingStartTime != "09:30" || current.TradingEndTime != "16:00" {
		t.Errorf("local copy not updated: %+v", current)
	}
}

func TestSetActiveBrokerIsOptimistic(t *testing.T) {
	fake := &fakeSettings{
		current: model.UserSettings{
			BrokerInfos: []model.BrokerInfo{{ID: 1, BrokerType: model.BrokerKIS}},
		},
	}
	svc := newTestService(t, fake)
	ctx := context.Background()

	if _, err := svc.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	fake.mu.Lock()
	getsBefore := fake.getCalls
	fake.mu.Unlock()

	if err := svc.SetActiveBroker(ctx, 1); err != nil {
		t.Fatalf("set active broker: %v", err)
	}

	current := svc.Current()
	if current.ActiveBrokerID == nil || *current.ActiveBrokerID != 1 {
		t.Errorf("active broker not applied locally: %+v", current.ActiveBrokerID)
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if fake.getCalls != getsBefore {
		t.Errorf("activation must not trigger a refetch, saw %d extra GETs", fake.getCalls-getsBefore)
	}
}

func TestAddAndDeleteBrokerRefetch(t *testing.T) {
	fake := &fakeSettings{}
	svc := newTestService(t, fake)
	ctx := context.Background()

	err := svc.AddBroker(ctx, model.AddBrokerRequest{
		BrokerType:    model.BrokerLS,
		AppKey:        "key",
		AppSecret:     "secret",
		AccountNumber: "123-456",
	})
	if err != nil {
		t.Fatalf("add broker: %v", err)
	}

	brokers := svc.Current().BrokerInfos
	if len(brokers) != 1 || brokers[0].BrokerType != model.BrokerLS {
		t.Fatalf("local copy missing the new broker: %+v", brokers)
	}
	if !strings.Contains(brokers[0].AccountNumber, "123") {
		t.Errorf("account number not round-tripped: %+v", brokers[0])
	}

	if err := svc.DeleteBroker(ctx, brokers[0].ID); err != nil {
		t.Fatalf("delete broker: %v", err)
	}
	if got := svc.Current().BrokerInfos; len(got) != 0 {
		t.Errorf("broker list after delete = %+v, want empty", got)
	}
}
