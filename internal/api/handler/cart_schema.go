package handler

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/jigyasu/commerce-system/internal/core/ports"
)

type cartItemRequest struct {
	UUID         uuid.UUID `json:"uuid"          validate:"required"`
	ActivityName string    `json:"activity_name" validate:"required"`
	Quantity     int       `json:"quantity"      validate:"required,gt=0"`
}

type submitCartResponse struct {
	Message          string `json:"message"`
	CartSubmissionID int64  `json:"cart_submission_id"`
	ItemsReceived    int    `json:"items_received"`
	Status           string `json:"status"`
}

type submissionListResponse struct {
	CartSubmissions []ports.SubmissionView `json:"cart_submissions"`
}

type priceQuoteResponse struct {
	CartSubmissionID int64           `json:"cart_submission_id"`
	TotalPrice       float64         `json:"total_price"`
	Components       json.RawMessage `json:"components"`
}

type quotePriceRequest struct {
	QuotedPrice float64 `json:"quoted_price" validate:"required,gt=0"`
}

type quotePriceResponse struct {
	Message     string  `json:"message"`
	QuotedPrice float64 `json:"quoted_price"`
}
