package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ktmart/marketplace-api/internal/model"
	"github.com/ktmart/marketplace-api/internal/payments"
	"github.com/ktmart/marketplace-api/internal/repository"
	"github.com/ktmart/marketplace-api/internal/service"
)

// PaymentHandler bundles the payment-intent bridge and the payment
// recorder behind the payment endpoints.
type PaymentHandler struct {
	Intents  payments.IntentCreator
	Recorder *service.PaymentRecorder
}

func NewPaymentHandler(intents payments.IntentCreator, recorder *service.PaymentRecorder) *PaymentHandler {
	return &PaymentHandler{Intents: intents, Recorder: recorder}
}

// CreateIntent handles POST /create-payment-intent.  The amount sent to the
// processor is the resale price converted to integer minor units.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req struct {
		ResalePrice float64 `json:"resale_price"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ResalePrice <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "resale_price must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	intent, err := h.Intents.Create(ctx, payments.MinorUnits(req.ResalePrice))
	if err != nil {
		c.Logger().Errorf("create payment intent: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment processor unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": intent.ClientSecret})
}

type createPaymentReq struct {
	ProductID     string  `json:"product_id"`
	BookingID     string  `json:"booking_id"`
	TransactionID string  `json:"transactionId"`
	Email         string  `json:"email"`
	Price         float64 `json:"price"`
}

// Create handles POST /payments: persist the payment record, then mark the
// product and the booking paid with the same transaction id.  Replaying a
// transaction id acknowledges without applying anything twice.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.ProductID = strings.TrimSpace(req.ProductID)
	req.BookingID = strings.TrimSpace(req.BookingID)
	req.TransactionID = strings.TrimSpace(req.TransactionID)
	if req.ProductID == "" || req.BookingID == "" || req.TransactionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id, booking_id and transactionId are required"})
	}
	// Reject malformed ids before any write happens; a half-recorded
	// payment against ids that can never match is not repairable.
	if !primitive.IsValidObjectID(req.ProductID) || !primitive.IsValidObjectID(req.BookingID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Recorder.Record(ctx, model.Payment{
		ProductID:     req.ProductID,
		BookingID:     req.BookingID,
		TransactionID: req.TransactionID,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Price:         req.Price,
	})
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product or booking not found"})
	case err != nil:
		c.Logger().Errorf("record payment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}
	if res.Replayed {
		return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "insertedId": res.InsertedID})
	}
	return c.JSON(http.StatusCreated, echo.Map{"acknowledged": true, "insertedId": res.InsertedID})
}
