package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ktmart/marketplace-api/internal/middleware"
	"github.com/ktmart/marketplace-api/internal/model"
	"github.com/ktmart/marketplace-api/internal/repository"
)

// BookingStore is the slice of the booking repository the handlers use.
type BookingStore interface {
	Exists(ctx context.Context, email, productModel string) (bool, error)
	Insert(ctx context.Context, b *model.Booking) (string, error)
	ByEmail(ctx context.Context, email string) ([]model.Booking, error)
	ByID(ctx context.Context, id string) (model.Booking, error)
}

// BookingHandler bundles dependencies for the booking endpoints.
type BookingHandler struct {
	Bookings BookingStore
}

func NewBookingHandler(b BookingStore) *BookingHandler {
	return &BookingHandler{Bookings: b}
}

type createBookingReq struct {
	Email       string  `json:"email"`
	Model       string  `json:"model"`
	ProductID   string  `json:"product_id"`
	ResalePrice float64 `json:"resale_price"`
	Image       string  `json:"image"`
	Location    string  `json:"location"`
	Phone       string  `json:"phone"`
}

// Create handles POST /bookings.  A buyer may hold at most one booking per
// (email, model) pair; a duplicate submission is acknowledged negatively
// and nothing is inserted.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil { // bind the incoming JSON into the request struct
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email)) // emails are stored lowercased
	req.Model = strings.TrimSpace(req.Model)
	if req.Email == "" || req.Model == "" { // the uniqueness pair must be present
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and model are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Bookings.Exists(ctx, req.Email, req.Model)
	if err != nil {
		c.Logger().Errorf("booking existence check: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if exists { // duplicate (email, model) pair, ack negatively without inserting
		return c.JSON(http.StatusConflict, echo.Map{"acknowledged": false, "message": "Already Booked"})
	}

	b := &model.Booking{
		Email:       req.Email,
		Model:       req.Model,
		ProductID:   req.ProductID,
		ResalePrice: req.ResalePrice,
		Image:       req.Image,
		Location:    req.Location,
		Phone:       req.Phone,
		BookedAt:    time.Now().UTC(),
	}
	id, err := h.Bookings.Insert(ctx, b)
	if err != nil {
		c.Logger().Errorf("create booking: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"acknowledged": true, "insertedId": id})
}

// ByEmail handles GET /bookings?email=.  The route sits behind the auth
// guard and the token's subject must equal the requested email; a valid
// token for someone else is forbidden.
func (h *BookingHandler) ByEmail(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}
	tokenEmail, _ := c.Get(middleware.ContextEmail).(string) // subject injected by the auth guard
	if !strings.EqualFold(tokenEmail, email) {               // a valid token for someone else is forbidden
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ByEmail(ctx, email)
	if err != nil {
		c.Logger().Errorf("list bookings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// ByID handles GET /bookings/:id.
func (h *BookingHandler) ByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.ByID(ctx, c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case err != nil:
		c.Logger().Errorf("get booking: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, b)
}
