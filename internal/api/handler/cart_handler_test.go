package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

type stubCartService struct {
	submitFn func(ctx context.Context, username string, items []domain.CartItem) (*ports.SubmitResult, error)
	listFn   func(ctx context.Context, callerRole, status string) ([]ports.SubmissionView, error)
	priceFn  func(ctx context.Context, callerRole string, submissionID int64, directFactor, indirectFactor float64) (*ports.PriceQuote, error)
	quoteFn  func(ctx context.Context, callerRole string, submissionID int64, quotedPrice float64) error
}

func (s *stubCartService) Submit(ctx context.Context, username string, items []domain.CartItem) (*ports.SubmitResult, error) {
	return s.submitFn(ctx, username, items)
}

func (s *stubCartService) ListSubmissions(ctx context.Context, callerRole, status string) ([]ports.SubmissionView, error) {
	return s.listFn(ctx, callerRole, status)
}

func (s *stubCartService) Price(ctx context.Context, callerRole string, submissionID int64, directFactor, indirectFactor float64) (*ports.PriceQuote, error) {
	return s.priceFn(ctx, callerRole, submissionID, directFactor, indirectFactor)
}

func (s *stubCartService) Quote(ctx context.Context, callerRole string, submissionID int64, quotedPrice float64) error {
	return s.quoteFn(ctx, callerRole, submissionID, quotedPrice)
}

func userContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("username", "alice")
	c.Set("role", domain.RoleUser)
	return c
}

func TestCartHandler_Submit(t *testing.T) {
	e := newTestEcho()
	stub := &stubCartService{
		submitFn: func(_ context.Context, username string, items []domain.CartItem) (*ports.SubmitResult, error) {
			if username != "alice" || len(items) != 2 {
				t.Fatalf("unexpected args: %s %d", username, len(items))
			}
			return &ports.SubmitResult{SubmissionID: 3, ItemsReceived: 2, Status: "pending"}, nil
		},
	}
	h := NewCartHandler(stub)

	body := strings.NewReader(`[` +
		`{"uuid":"0b9fdb7a-54c7-44f3-a741-0a1e6b84289f","activity_name":"City Walking Tour","quantity":2},` +
		`{"uuid":"73a408f2-9a8e-4a49-92e1-0393c6b2a07a","activity_name":"Museum Pass","quantity":1}]`)
	req := httptest.NewRequest(http.MethodPost, "/api/cart/submit-cart", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := userContext(e, req, rec)

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Cart submitted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if resp["items_received"] != float64(2) || resp["status"] != "pending" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCartHandler_Submit_EmptyCart(t *testing.T) {
	e := newTestEcho()
	h := NewCartHandler(&stubCartService{
		submitFn: func(context.Context, string, []domain.CartItem) (*ports.SubmitResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/submit-cart", strings.NewReader(`[]`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := userContext(e, req, rec)

	if err := h.Submit(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartHandler_Submit_InvalidItem(t *testing.T) {
	e := newTestEcho()
	h := NewCartHandler(&stubCartService{
		submitFn: func(context.Context, string, []domain.CartItem) (*ports.SubmitResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`[{"uuid":"0b9fdb7a-54c7-44f3-a741-0a1e6b84289f","activity_name":"","quantity":0}]`)
	req := httptest.NewRequest(http.MethodPost, "/api/cart/submit-cart", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := userContext(e, req, rec)

	if err := h.Submit(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCartHandler_ListSubmissions(t *testing.T) {
	e := newTestEcho()
	stub := &stubCartService{
		listFn: func(_ context.Context, callerRole, status string) ([]ports.SubmissionView, error) {
			if callerRole != domain.RoleSuperuser || status != "pending" {
				t.Fatalf("unexpected args: %s %s", callerRole, status)
			}
			return []ports.SubmissionView{{
				ID:     3,
				Status: "pending",
				User:   ports.UserPublic{Username: "alice", Email: "a@x.com"},
			}}, nil
		},
	}
	h := NewCartHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/cart-submissions?status=pending", nil)
	rec := httptest.NewRecorder()
	c := superuserContext(e, req, rec)

	if err := h.ListSubmissions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"cart_submissions"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCartHandler_CalculatePrice(t *testing.T) {
	e := newTestEcho()
	stub := &stubCartService{
		priceFn: func(_ context.Context, callerRole string, submissionID int64, direct, indirect float64) (*ports.PriceQuote, error) {
			if submissionID != 3 || direct != 0.1 || indirect != 0.05 {
				t.Fatalf("unexpected args: %d %v %v", submissionID, direct, indirect)
			}
			return &ports.PriceQuote{
				SubmissionID: 3,
				TotalPrice:   120.5,
				Components:   json.RawMessage(`{"base":100}`),
			}, nil
		},
	}
	h := NewCartHandler(stub)

	req := httptest.NewRequest(http.MethodGet,
		"/api/cart/calculate-price/3?direct_factor=0.1&indirect_factor=0.05", nil)
	rec := httptest.NewRecorder()
	c := superuserContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.CalculatePrice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["cart_submission_id"] != float64(3) || resp["total_price"] != 120.5 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["components"].(map[string]any); !ok {
		t.Fatalf("components not passed through: %+v", resp)
	}
}

func TestCartHandler_CalculatePrice_MissingFactors(t *testing.T) {
	e := newTestEcho()
	h := NewCartHandler(&stubCartService{
		priceFn: func(context.Context, string, int64, float64, float64) (*ports.PriceQuote, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cart/calculate-price/3", nil)
	rec := httptest.NewRecorder()
	c := superuserContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.CalculatePrice(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartHandler_CalculatePrice_UpstreamDown(t *testing.T) {
	e := newTestEcho()
	h := NewCartHandler(&stubCartService{
		priceFn: func(context.Context, string, int64, float64, float64) (*ports.PriceQuote, error) {
			return nil, domain.ErrPricingUnavailable
		},
	})

	req := httptest.NewRequest(http.MethodGet,
		"/api/cart/calculate-price/3?direct_factor=0.1&indirect_factor=0.05", nil)
	rec := httptest.NewRecorder()
	c := superuserContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.CalculatePrice(c)
	if err == nil {
		t.Fatalf("expected error to propagate")
	}
}

func TestCartHandler_QuotePrice(t *testing.T) {
	e := newTestEcho()
	stub := &stubCartService{
		quoteFn: func(_ context.Context, callerRole string, submissionID int64, quotedPrice float64) error {
			if submissionID != 3 || quotedPrice != 120.5 {
				t.Fatalf("unexpected args: %d %v", submissionID, quotedPrice)
			}
			return nil
		},
	}
	h := NewCartHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/quote-price/3",
		strings.NewReader(`{"quoted_price":120.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := superuserContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.QuotePrice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Quoted price sent to the user via email" || resp["quoted_price"] != 120.5 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCartHandler_QuotePrice_InvalidPrice(t *testing.T) {
	e := newTestEcho()
	h := NewCartHandler(&stubCartService{
		quoteFn: func(context.Context, string, int64, float64) error {
			t.Fatalf("should not be called")
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/quote-price/3",
		strings.NewReader(`{"quoted_price":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := superuserContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.QuotePrice(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
