package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func newTestRouter() http.Handler {
	return newServerRouter(rate.NewLimiter(rate.Limit(1000), 1000))
}

func TestHealthzReturnsOK(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "ok" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

func TestInvokeRejectsMalformedJSON(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/invoke", bytes.NewBufferString("not json"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestInvokeRejectsInvalidContractHex(t *testing.T) {
	r := newTestRouter()
	body, _ := json.Marshal(invokeRequest{Contract: "not-hex", Function: "run"})
	req := httptest.NewRequest(http.MethodPost, "/invoke", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var res invokeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Error == "" {
		t.Fatalf("expected an error message in the response")
	}
}

func TestInvokeRejectsWrongAddressLength(t *testing.T) {
	r := newTestRouter()
	body, _ := json.Marshal(invokeRequest{Contract: "aabb", Function: "run"})
	req := httptest.NewRequest(http.MethodPost, "/invoke", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestInvokeUnknownContractFails(t *testing.T) {
	r := newTestRouter()
	addr := make([]byte, 33)
	addr[0] = 0x7f
	body, _ := json.Marshal(invokeRequest{Contract: hex.EncodeToString(addr), Function: "run"})
	req := httptest.NewRequest(http.MethodPost, "/invoke", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for an undeployed contract, got %d", rr.Code)
	}
}

func TestRateLimiterRejectsOverCapacity(t *testing.T) {
	r := newServerRouter(rate.NewLimiter(rate.Limit(0), 0))
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 from a zero-capacity limiter, got %d", rr.Code)
	}
}

