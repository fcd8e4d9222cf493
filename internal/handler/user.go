package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ktmart/marketplace-api/internal/config"
	"github.com/ktmart/marketplace-api/internal/model"
	"github.com/ktmart/marketplace-api/internal/repository"
	"github.com/ktmart/marketplace-api/internal/utils"
)

// UserStore is the slice of the user repository the handlers use.
type UserStore interface {
	All(ctx context.Context) ([]model.User, error)
	Buyers(ctx context.Context) ([]model.User, error)
	Sellers(ctx context.Context) ([]model.User, error)
	ByEmail(ctx context.Context, email string) (model.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, u *model.User) (string, error)
	Delete(ctx context.Context, id string) error
	GrantAdmin(ctx context.Context, id string) error
	MarkGenuineSeller(ctx context.Context, id string) error
}

// UserHandler bundles dependencies for the user and token endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, u UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type createUserReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Create handles POST /users.  One user per email: a duplicate submission
// is acknowledged negatively and nothing is inserted.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil { // bind the incoming JSON into the request struct
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email)) // email is the identity, stored lowercased
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Users.Exists(ctx, req.Email)
	if err != nil {
		c.Logger().Errorf("user existence check: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if exists { // one user per email, ack negatively without inserting
		return c.JSON(http.StatusConflict, echo.Map{"acknowledged": false, "message": "You are already user"})
	}

	u := &model.User{
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
		Role:  model.NormalizeRole(req.Role), // absent or unknown roles become buyer
	}
	id, err := h.Users.Insert(ctx, u)
	if err != nil {
		c.Logger().Errorf("create user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"acknowledged": true, "insertedId": id})
}

// All handles GET /users.
func (h *UserHandler) All(c echo.Context) error {
	return h.list(c, h.Users.All)
}

// Buyers handles GET /users/buyers.
func (h *UserHandler) Buyers(c echo.Context) error {
	return h.list(c, h.Users.Buyers)
}

// Sellers handles GET /sellers.
func (h *UserHandler) Sellers(c echo.Context) error {
	return h.list(c, h.Users.Sellers)
}

func (h *UserHandler) list(c echo.Context, fetch func(context.Context) ([]model.User, error)) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := fetch(ctx)
	if err != nil {
		c.Logger().Errorf("list users: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, users)
}

// ByEmail handles GET /users/:email.
func (h *UserHandler) ByEmail(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.ByEmail(ctx, c.Param("email"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case err != nil:
		c.Logger().Errorf("get user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Users.Delete(ctx, c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case err != nil:
		c.Logger().Errorf("delete user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "deletedCount": 1})
}

// GrantAdmin handles PUT /users/admin/:id.  The route sits behind the auth
// guard plus an admin role check; the grant itself is an idempotent upsert,
// so promoting an existing admin succeeds without changing anything.
func (h *UserHandler) GrantAdmin(c echo.Context) error {
	return h.grant(c, h.Users.GrantAdmin)
}

// GrantSeller handles PUT /users/sellers/:id, marking a seller as genuine.
// Admin-guarded like GrantAdmin.
func (h *UserHandler) GrantSeller(c echo.Context) error {
	return h.grant(c, h.Users.MarkGenuineSeller)
}

func (h *UserHandler) grant(c echo.Context, apply func(context.Context, string) error) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := apply(ctx, c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	case err != nil:
		c.Logger().Errorf("grant role: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true})
}

// IsAdmin handles GET /users/admin/:email.
func (h *UserHandler) IsAdmin(c echo.Context) error {
	return h.roleCheck(c, func(u model.User) error {
		return c.JSON(http.StatusOK, echo.Map{"isAdmin": u.IsAdmin()})
	})
}

// IsBuyer handles GET /users/buyer/:email.  A user whose role is neither
// seller nor admin counts as a buyer.
func (h *UserHandler) IsBuyer(c echo.Context) error {
	return h.roleCheck(c, func(u model.User) error {
		return c.JSON(http.StatusOK, echo.Map{"isBuyer": u.IsBuyer()})
	})
}

// IsSeller handles GET /users/seller/:email.  Alongside the flag it returns
// the user document, so clients can read the genuine_seller badge.
func (h *UserHandler) IsSeller(c echo.Context) error {
	return h.roleCheck(c, func(u model.User) error {
		return c.JSON(http.StatusOK, echo.Map{"isSeller": u.IsSeller(), "user": u})
	})
}

// roleCheck fetches the :email user and hands it to respond; lookup misses
// surface as 404.
func (h *UserHandler) roleCheck(c echo.Context, respond func(model.User) error) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.ByEmail(ctx, c.Param("email"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case err != nil:
		c.Logger().Errorf("role check: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return respond(u)
}

// Token handles GET /jwt?email=.  A token is only issued for an existing
// user; anyone else gets an empty accessToken with 403.
func (h *UserHandler) Token(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.ByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound): // unknown emails get an empty token, not a 404
		return c.JSON(http.StatusForbidden, echo.Map{"accessToken": ""})
	case err != nil:
		c.Logger().Errorf("token lookup: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Email, u.Role, h.Cfg.TokenTTLDays)
	if err != nil {
		c.Logger().Errorf("sign token: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"accessToken": token})
}
