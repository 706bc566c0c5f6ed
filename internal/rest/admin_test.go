package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"partyPredictor/business/predict"
	"partyPredictor/domain"

	"github.com/labstack/echo/v4"
)

type fakeAdminService struct {
	events     []domain.PredictionEvent
	historyErr error
	flushErr   error
	gotHandle  string
	gotLimit   int
}

func (f *fakeAdminService) History(ctx context.Context, handle string, limit int) ([]domain.PredictionEvent, error) {
	f.gotHandle, f.gotLimit = handle, limit
	return f.events, f.historyErr
}

func (f *fakeAdminService) FlushModelCache() (int, error) {
	return 3, f.flushErr
}

func serveAdmin(svc *fakeAdminService, method, target string) *httptest.ResponseRecorder {
	h := NewAdminHandler(svc)
	e := echo.New()
	e.GET("/api/v1/admin/predictions", h.History)
	e.DELETE("/api/v1/admin/models/cache", h.FlushModelCache)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestAdminHandler_History(t *testing.T) {
	svc := &fakeAdminService{events: []domain.PredictionEvent{{Handle: "testuser", Predicted: domain.PartyDemocrat}}}

	rec := serveAdmin(svc, http.MethodGet, "/api/v1/admin/predictions?handle=testuser&limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.gotHandle != "testuser" || svc.gotLimit != 5 {
		t.Errorf("query = (%q, %d)", svc.gotHandle, svc.gotLimit)
	}
	if !strings.Contains(rec.Body.String(), domain.PartyDemocrat) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestAdminHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		svc    *fakeAdminService
		method string
		target string
		want   int
	}{
		{"limit too large", &fakeAdminService{}, http.MethodGet, "/api/v1/admin/predictions?limit=100000", http.StatusBadRequest},
		{"limit not a number", &fakeAdminService{}, http.MethodGet, "/api/v1/admin/predictions?limit=many", http.StatusBadRequest},
		{"history disabled", &fakeAdminService{historyErr: predict.ErrHistoryDisabled}, http.MethodGet, "/api/v1/admin/predictions", http.StatusNotFound},
		{"cache disabled", &fakeAdminService{flushErr: predict.ErrModelCacheDisabled}, http.MethodDelete, "/api/v1/admin/models/cache", http.StatusConflict},
		{"cache flushed", &fakeAdminService{}, http.MethodDelete, "/api/v1/admin/models/cache", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveAdmin(tt.svc, tt.method, tt.target)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
