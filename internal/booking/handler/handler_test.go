package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"harvey_bookings/internal/booking/handler"
	"harvey_bookings/internal/booking/service"
	"harvey_bookings/internal/booking/transport"
	"harvey_bookings/internal/messaging"
	"harvey_bookings/platform/config"
	"harvey_bookings/platform/logger"
	"harvey_bookings/platform/phone"
	"harvey_bookings/platform/validator"
)

type stubGateway struct {
	mu         sync.Mutex
	configured bool
	fail       bool
	sends      int
}

func (g *stubGateway) Provider() string { return "stub" }

func (g *stubGateway) Configured() bool { return g.configured }

func (g *stubGateway) Send(context.Context, string, string) (messaging.Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sends++
	if g.fail {
		return messaging.Receipt{Provider: "stub"}, context.DeadlineExceeded
	}
	return messaging.Receipt{Provider: "stub", MessageID: "msg-1"}, nil
}

type bookingCfg struct{}

func (bookingCfg) GetOwnerPhone() string          { return "61400000001" }
func (bookingCfg) GetOwnerChannel() string        { return config.OwnerChannelWhatsApp }
func (bookingCfg) GetOwnerEmail() string          { return "" }
func (bookingCfg) GetDateLocale() string          { return "en-AU" }
func (bookingCfg) GetBusinessName() string        { return "Thai Massage on Harvey" }
func (bookingCfg) GetBusinessLocation() string    { return "4 Harvey Cct, Mawson Lakes, SA 5095" }
func (bookingCfg) GetBusinessContact() string     { return "0401 818 848" }
func (bookingCfg) GetPhoneDefaultRegion() string  { return "AU" }
func (bookingCfg) GetPhoneDefaultPrefix() string  { return "61" }
func (bookingCfg) GetPhoneIntlPrefixes() []string { return []string{"61", "39"} }

func newTestEngine(gateway *stubGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := bookingCfg{}
	svc := service.New(gateway, nil, phone.NewNormalizer(cfg), validator.New(), cfg, logger.New("test"))
	h := handler.New(svc)

	engine := gin.New()
	engine.POST("/api/v1/bookings/notify", h.Notify)
	return engine
}

func postBooking(t *testing.T, engine *gin.Engine, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/notify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func validPayload() transport.BookingNotificationRequest {
	return transport.BookingNotificationRequest{
		Service:  "Relaxation Massage",
		Date:     "2026-03-14",
		Time:     "10:00",
		Duration: 90,
		Name:     "Sam",
		Email:    "sam@example.com",
		Phone:    "0401818848",
	}
}

func TestNotifySuccess(t *testing.T) {
	gateway := &stubGateway{configured: true}
	engine := newTestEngine(gateway)

	rec := postBooking(t, engine, validPayload())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var resp transport.DispatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Errorf("success = false, want true: %s", resp.Message)
	}
	if len(resp.Outcomes) != 2 {
		t.Errorf("outcomes = %d, want 2", len(resp.Outcomes))
	}
	if gateway.sends != 2 {
		t.Errorf("gateway sends = %d, want 2", gateway.sends)
	}
}

func TestNotifyValidationFailure(t *testing.T) {
	gateway := &stubGateway{configured: true}
	engine := newTestEngine(gateway)

	payload := validPayload()
	payload.Phone = ""
	rec := postBooking(t, engine, payload)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
	if gateway.sends != 0 {
		t.Errorf("gateway sends = %d, want 0", gateway.sends)
	}
}

func TestNotifyMalformedJSON(t *testing.T) {
	engine := newTestEngine(&stubGateway{configured: true})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/notify", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestNotifyMissingCredentials(t *testing.T) {
	gateway := &stubGateway{configured: false}
	engine := newTestEngine(gateway)

	rec := postBooking(t, engine, validPayload())

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500, body %s", rec.Code, rec.Body.String())
	}
	if gateway.sends != 0 {
		t.Errorf("gateway sends = %d, want 0", gateway.sends)
	}
}

func TestNotifySendFailureReportsOutcomes(t *testing.T) {
	gateway := &stubGateway{configured: true, fail: true}
	engine := newTestEngine(gateway)

	rec := postBooking(t, engine, validPayload())

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500, body %s", rec.Code, rec.Body.String())
	}

	var resp transport.DispatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("success = true, want false")
	}
	if len(resp.Outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(resp.Outcomes))
	}
	for _, outcome := range resp.Outcomes {
		if outcome.Success || outcome.Error == "" {
			t.Errorf("outcome %s should carry a failure detail", outcome.Recipient)
		}
	}
}
