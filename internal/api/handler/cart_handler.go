package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jigyasu/commerce-system/internal/api/metrics"
	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

// CartHandler handles cart submission and the pricing pipeline.
type CartHandler struct {
	cartService ports.CartService
}

func NewCartHandler(cartService ports.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Submit accepts a JSON array of cart items and persists a pending submission.
//
// @Summary      Submit a cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []cartItemRequest  true  "Selected cart items"
// @Success      201   {object}  submitCartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/cart/submit-cart [post]
func (h *CartHandler) Submit(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var reqs []cartItemRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "cart cannot be empty")
	}

	items := make([]domain.CartItem, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("item[%d]: %s", i, err.Error()))
		}
		items = append(items, domain.CartItem{
			UUID:         req.UUID,
			ActivityName: req.ActivityName,
			Quantity:     req.Quantity,
		})
	}

	result, err := h.cartService.Submit(c.Request().Context(), username, items)
	if err != nil {
		return err
	}
	metrics.CartsSubmittedTotal.Inc()

	return c.JSON(http.StatusCreated, submitCartResponse{
		Message:          "Cart submitted successfully",
		CartSubmissionID: result.SubmissionID,
		ItemsReceived:    result.ItemsReceived,
		Status:           result.Status,
	})
}

// ListSubmissions returns cart submissions with their owners.
//
// @Summary      List cart submissions
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Submission status filter"  Enums(pending, replied)
// @Success      200     {object}  submissionListResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/cart/cart-submissions [get]
func (h *CartHandler) ListSubmissions(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	views, err := h.cartService.ListSubmissions(c.Request().Context(), role, c.QueryParam("status"))
	if err != nil {
		return err
	}
	if views == nil {
		views = []ports.SubmissionView{}
	}

	return c.JSON(http.StatusOK, submissionListResponse{CartSubmissions: views})
}

// CalculatePrice forwards a submission to the pricing collaborator.
//
// @Summary      Calculate a submission's price
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      int     true  "Cart submission ID"
// @Param        direct_factor    query     number  true  "Direct cost factor"
// @Param        indirect_factor  query     number  true  "Indirect cost factor"
// @Success      200              {object}  priceQuoteResponse
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      502              {object}  errorResponse
// @Router       /api/cart/calculate-price/{id} [get]
func (h *CartHandler) CalculatePrice(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	submissionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid submission id")
	}

	directFactor, err := strconv.ParseFloat(c.QueryParam("direct_factor"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "direct_factor must be a number")
	}
	indirectFactor, err := strconv.ParseFloat(c.QueryParam("indirect_factor"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "indirect_factor must be a number")
	}

	quote, err := h.cartService.Price(c.Request().Context(), role, submissionID, directFactor, indirectFactor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, priceQuoteResponse{
		CartSubmissionID: quote.SubmissionID,
		TotalPrice:       quote.TotalPrice,
		Components:       quote.Components,
	})
}

// QuotePrice emails the quoted price to the submission's owner.
//
// @Summary      Send a price quote to the cart owner
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Cart submission ID"
// @Param        body  body      quotePriceRequest  true  "Quoted price"
// @Success      200   {object}  quotePriceResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/cart/quote-price/{id} [post]
func (h *CartHandler) QuotePrice(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	submissionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid submission id")
	}

	var req quotePriceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.cartService.Quote(c.Request().Context(), role, submissionID, req.QuotedPrice); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, quotePriceResponse{
		Message:     "Quoted price sent to the user via email",
		QuotedPrice: req.QuotedPrice,
	})
}
