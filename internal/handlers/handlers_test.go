package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	"github.com/BruksfildServices01/barberpro/internal/logger"
	"github.com/BruksfildServices01/barberpro/internal/middleware"
	"github.com/BruksfildServices01/barberpro/internal/routes"
	"github.com/BruksfildServices01/barberpro/internal/testfixtures"
)

const bookingDate = "2025-03-10"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testfixtures.NewDB(t)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger.Discard()))
	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:         db,
		Config:     testfixtures.Config(),
		AuditStore: audit.New(db),
	}); err != nil {
		t.Fatalf("register routes: %v", err)
	}
	return r, db
}

func do(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

type errorBody struct {
	Code    string         `json:"error_code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func register(t *testing.T, r http.Handler, slug string) (token string, shopID uint) {
	t.Helper()

	w := do(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"barbershop_name": "Shop " + slug,
		"barbershop_slug": slug,
		"name":            "Owner",
		"email":           slug + "@example.com",
		"password":        "secret123",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	out := decode[struct {
		Token      string `json:"token"`
		Barbershop struct {
			ID uint `json:"id"`
		} `json:"barbershop"`
	}](t, w)
	return out.Token, out.Barbershop.ID
}

// ======================================================
// PUBLIC
// ======================================================

func TestPublicAvailability(t *testing.T) {
	r, db := newRouter(t)
	shop := testfixtures.Barbershop(t, db, "downtown")
	svc := testfixtures.Service(t, db, shop.ID, "Haircut", 60, "50.00")

	w := do(t, r, http.MethodGet,
		fmt.Sprintf("/api/public/downtown/availability?date=%s&service_id=%d", bookingDate, svc.ID), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	out := decode[struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}](t, w)

	if out.Date != bookingDate {
		t.Errorf("expected date %s, got %s", bookingDate, out.Date)
	}
	if len(out.Slots) != 17 {
		t.Fatalf("expected 17 slots, got %d: %v", len(out.Slots), out.Slots)
	}
	if out.Slots[0] != "09:00" || out.Slots[16] != "17:00" {
		t.Errorf("unexpected slot range %s..%s", out.Slots[0], out.Slots[16])
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}

func TestPublicAvailability_Errors(t *testing.T) {
	r, db := newRouter(t)
	shop := testfixtures.Barbershop(t, db, "downtown")
	svc := testfixtures.Service(t, db, shop.ID, "Haircut", 60, "50.00")

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown shop",
			path:     fmt.Sprintf("/api/public/nowhere/availability?date=%s&service_id=%d", bookingDate, svc.ID),
			wantCode: http.StatusNotFound,
			wantErr:  "barbershop_not_found",
		},
		{
			name:     "bad date",
			path:     fmt.Sprintf("/api/public/downtown/availability?date=2025-02-30&service_id=%d", svc.ID),
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid_date",
		},
		{
			name:     "missing service",
			path:     "/api/public/downtown/availability?date=" + bookingDate,
			wantCode: http.StatusBadRequest,
			wantErr:  "service_required",
		},
		{
			name:     "unknown service",
			path:     "/api/public/downtown/availability?date=" + bookingDate + "&service_id=999",
			wantCode: http.StatusBadRequest,
			wantErr:  "unknown_service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, tt.path, nil, "")
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			if got := decode[errorBody](t, w).Code; got != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, got)
			}
		})
	}
}

func TestPublicBooking(t *testing.T) {
	r, db := newRouter(t)
	shop := testfixtures.Barbershop(t, db, "downtown")
	svc := testfixtures.Service(t, db, shop.ID, "Haircut", 60, "50.00")
	bookPath := fmt.Sprintf("/api/public/downtown/services/%d/bookings", svc.ID)

	w := do(t, r, http.MethodPost, bookPath, map[string]string{
		"client_name":  "Ana",
		"client_phone": "11 98765-4321",
		"date":         bookingDate,
		"time":         "10:00",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "/api/public/bookings/") {
		t.Fatalf("unexpected Location %q", location)
	}

	conf := decode[struct {
		Reference   string `json:"reference"`
		ServiceName string `json:"service_name"`
		StartTime   string `json:"start_time"`
		Status      string `json:"status"`
	}](t, w)
	if conf.ServiceName != "Haircut" || conf.StartTime != "10:00" || conf.Status != "pending" {
		t.Errorf("unexpected confirmation %+v", conf)
	}

	t.Run("confirmation lookup", func(t *testing.T) {
		w := do(t, r, http.MethodGet, location, nil, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if got := decode[struct {
			Reference string `json:"reference"`
		}](t, w).Reference; got != conf.Reference {
			t.Errorf("expected reference %s, got %s", conf.Reference, got)
		}
	})

	t.Run("unknown reference", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/public/bookings/does-not-exist", nil, "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("overlapping booking is rejected", func(t *testing.T) {
		w := do(t, r, http.MethodPost, bookPath, map[string]string{
			"client_name":  "Bruno",
			"client_phone": "11 91234-5678",
			"date":         bookingDate,
			"time":         "10:30",
		}, "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
		}

		body := decode[errorBody](t, w)
		if body.Code != "slot_conflict" {
			t.Errorf("expected slot_conflict, got %q", body.Code)
		}
		if !strings.Contains(body.Message, "Haircut") || !strings.Contains(body.Message, "10:00") {
			t.Errorf("message should name the existing booking, got %q", body.Message)
		}
	})

	t.Run("availability hides the booked hour", func(t *testing.T) {
		w := do(t, r, http.MethodGet,
			fmt.Sprintf("/api/public/downtown/availability?date=%s&service_id=%d", bookingDate, svc.ID), nil, "")
		slots := decode[struct {
			Slots []string `json:"slots"`
		}](t, w).Slots

		for _, s := range slots {
			if s == "09:30" || s == "10:00" || s == "10:30" {
				t.Errorf("slot %s overlaps the 10:00 booking", s)
			}
		}
		if len(slots) != 14 {
			t.Errorf("expected 14 free slots, got %d: %v", len(slots), slots)
		}
	})
}

func TestPublicBooking_InvalidBody(t *testing.T) {
	r, db := newRouter(t)
	shop := testfixtures.Barbershop(t, db, "downtown")
	svc := testfixtures.Service(t, db, shop.ID, "Haircut", 60, "50.00")

	w := do(t, r, http.MethodPost, fmt.Sprintf("/api/public/downtown/services/%d/bookings", svc.ID), map[string]string{
		"client_name":  "Ana",
		"client_phone": "11 98765-4321",
		"date":         bookingDate,
		"time":         "25:00",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	body := decode[errorBody](t, w)
	if body.Code != "invalid_request" {
		t.Errorf("expected invalid_request, got %q", body.Code)
	}
	if body.Details["time"] != "hhmm" {
		t.Errorf("expected time to fail the hhmm rule, got %v", body.Details)
	}
}

func TestPublicServices(t *testing.T) {
	r, db := newRouter(t)
	shop := testfixtures.Barbershop(t, db, "downtown")
	testfixtures.Service(t, db, shop.ID, "Haircut", 60, "50.00")
	testfixtures.Service(t, db, shop.ID, "Beard", 30, "30.00")
	other := testfixtures.Barbershop(t, db, "uptown")
	testfixtures.Service(t, db, other.ID, "Shave", 30, "20.00")

	w := do(t, r, http.MethodGet, "/api/public/downtown/services", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	out := decode[struct {
		Barbershop struct {
			Slug string `json:"slug"`
		} `json:"barbershop"`
		Services []struct {
			Name string `json:"name"`
		} `json:"services"`
	}](t, w)
	if out.Barbershop.Slug != "downtown" {
		t.Errorf("expected barbershop downtown, got %q", out.Barbershop.Slug)
	}

	services := out.Services
	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}
	for _, s := range services {
		if s.Name == "Shave" {
			t.Error("listed a service of another barbershop")
		}
	}
}

// ======================================================
// AUTH + OWNER
// ======================================================

func TestRegisterLoginAndMe(t *testing.T) {
	r, _ := newRouter(t)
	register(t, r, "downtown")

	t.Run("duplicate slug", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/auth/register", map[string]string{
			"barbershop_name": "Other",
			"barbershop_slug": "downtown",
			"name":            "Other",
			"email":           "other@example.com",
			"password":        "secret123",
		}, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
		if got := decode[errorBody](t, w).Code; got != "slug_already_exists" {
			t.Errorf("expected slug_already_exists, got %q", got)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "downtown@example.com",
			"password": "nope-nope",
		}, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	w := do(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "downtown@example.com",
		"password": "secret123",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	token := decode[struct {
		Token string `json:"token"`
	}](t, w).Token

	w = do(t, r, http.MethodGet, "/api/me", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	me := decode[struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		Barbershop struct {
			Slug string `json:"slug"`
		} `json:"barbershop"`
	}](t, w)
	if me.User.Email != "downtown@example.com" || me.Barbershop.Slug != "downtown" {
		t.Errorf("unexpected me payload %s", w.Body.String())
	}
}

func TestOwnerRoutesRequireToken(t *testing.T) {
	r, _ := newRouter(t)

	for _, path := range []string{"/api/me", "/api/me/services", "/api/me/appointments"} {
		w := do(t, r, http.MethodGet, path, nil, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, w.Code)
		}
	}

	w := do(t, r, http.MethodGet, "/api/me", nil, "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a malformed token, got %d", w.Code)
	}
}

func TestOwnerServiceCRUD(t *testing.T) {
	r, _ := newRouter(t)
	token, _ := register(t, r, "downtown")

	w := do(t, r, http.MethodPost, "/api/me/services", map[string]any{
		"name":             "Haircut",
		"price":            "50.00",
		"duration_minutes": 60,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := decode[struct {
		ID uint `json:"id"`
	}](t, w).ID

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/api/me/services/%d", id), map[string]any{
		"duration_minutes": 45,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decode[struct {
		DurationMinutes int `json:"duration_minutes"`
	}](t, w).DurationMinutes; got != 45 {
		t.Errorf("expected duration 45, got %d", got)
	}

	w = do(t, r, http.MethodGet, "/api/me/services", nil, token)
	if n := len(decode[[]map[string]any](t, w)); n != 1 {
		t.Fatalf("expected 1 service, got %d", n)
	}

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/me/services/%d", id), nil, token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/me/services/%d", id), nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}

func TestOwnerServicesAreScopedToShop(t *testing.T) {
	r, _ := newRouter(t)
	tokenA, _ := register(t, r, "downtown")
	tokenB, _ := register(t, r, "uptown")

	w := do(t, r, http.MethodPost, "/api/me/services", map[string]any{
		"name":             "Haircut",
		"price":            "50.00",
		"duration_minutes": 60,
	}, tokenA)
	id := decode[struct {
		ID uint `json:"id"`
	}](t, w).ID

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/api/me/services/%d", id), map[string]any{"name": "Stolen"}, tokenB)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 editing another shop's service, got %d", w.Code)
	}
}

func TestOwnerAppointmentFlow(t *testing.T) {
	r, _ := newRouter(t)
	token, _ := register(t, r, "downtown")

	w := do(t, r, http.MethodPost, "/api/me/services", map[string]any{
		"name":             "Haircut",
		"price":            "50.00",
		"duration_minutes": 60,
	}, token)
	serviceID := decode[struct {
		ID uint `json:"id"`
	}](t, w).ID

	w = do(t, r, http.MethodPost, "/api/me/clients", map[string]any{
		"name":  "Ana",
		"phone": "11 98765-4321",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	client := decode[struct {
		ID    uint   `json:"id"`
		Phone string `json:"phone"`
	}](t, w)
	if client.Phone != "+5511987654321" {
		t.Errorf("expected normalized phone, got %q", client.Phone)
	}

	create := func(clock string) *httptest.ResponseRecorder {
		return do(t, r, http.MethodPost, "/api/me/appointments", map[string]any{
			"client_id":  client.ID,
			"service_id": serviceID,
			"date":       bookingDate,
			"time":       clock,
		}, token)
	}

	w = create("10:00")
	if w.Code != http.StatusCreated {
		t.Fatalf("create appointment: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	apptID := decode[struct {
		ID uint `json:"id"`
	}](t, w).ID

	if w := create("10:30"); w.Code != http.StatusConflict {
		t.Fatalf("overlap: expected 409, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d", apptID), map[string]any{
		"time": "10:00",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("same-time edit: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/me/appointments?date="+bookingDate, nil, token)
	if n := len(decode[[]map[string]any](t, w)); n != 1 {
		t.Fatalf("expected 1 appointment on %s, got %d", bookingDate, n)
	}

	w = do(t, r, http.MethodGet, "/api/me/appointments/month?year=2025&month=3", nil, token)
	if n := len(decode[[]map[string]any](t, w)); n != 1 {
		t.Fatalf("expected 1 appointment in March, got %d", n)
	}

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/complete", apptID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decode[struct {
		Status string `json:"status"`
	}](t, w).Status; got != "completed" {
		t.Errorf("expected completed, got %q", got)
	}

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/cancel", apptID), nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("cancel completed: expected 400, got %d", w.Code)
	}
	if got := decode[errorBody](t, w).Code; got != "invalid_state" {
		t.Errorf("expected invalid_state, got %q", got)
	}

	w = do(t, r, http.MethodGet, "/api/me/appointments?status=bogus", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad status filter: expected 400, got %d", w.Code)
	}
}
