package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ktmart/marketplace-api/internal/model"
	"github.com/ktmart/marketplace-api/internal/repository"
)

// BrandStore is the slice of the brand repository the catalog handlers use.
type BrandStore interface {
	All(ctx context.Context) ([]model.Brand, error)
}

// ProductStore is the slice of the product repository the catalog handlers use.
type ProductStore interface {
	All(ctx context.Context) ([]model.Product, error)
	ByBrand(ctx context.Context, name string) ([]model.Product, error)
	BySeller(ctx context.Context, email string) ([]model.Product, error)
	Advertised(ctx context.Context) ([]model.Product, error)
	ByID(ctx context.Context, id string) (model.Product, error)
	Insert(ctx context.Context, p *model.Product) (string, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
}

// CatalogHandler bundles dependencies for the brand and product endpoints.
type CatalogHandler struct {
	Brands   BrandStore
	Products ProductStore
}

func NewCatalogHandler(b BrandStore, p ProductStore) *CatalogHandler {
	return &CatalogHandler{Brands: b, Products: p}
}

// GetBrands handles GET /brands.
func (h *CatalogHandler) GetBrands(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	brands, err := h.Brands.All(ctx)
	if err != nil {
		c.Logger().Errorf("list brands: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, brands)
}

// GetProductsByBrand handles GET /products/:name.
func (h *CatalogHandler) GetProductsByBrand(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.ByBrand(ctx, c.Param("name"))
	if err != nil {
		c.Logger().Errorf("list products by brand: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, products)
}

// GetProducts handles GET /products.  With ?seller_email= the listing is
// filtered to that seller; without it every product is returned.
func (h *CatalogHandler) GetProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		products []model.Product
		err      error
	)
	if seller := strings.TrimSpace(c.QueryParam("seller_email")); seller != "" {
		products, err = h.Products.BySeller(ctx, seller)
	} else {
		products, err = h.Products.All(ctx)
	}
	if err != nil {
		c.Logger().Errorf("list products: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, products)
}

// GetAdvertised handles GET /advertisies (path kept for client
// compatibility): products with status advertised, newest first.
func (h *CatalogHandler) GetAdvertised(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.Advertised(ctx)
	if err != nil {
		c.Logger().Errorf("list advertised: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /product/:id.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.ByID(ctx, c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrInvalidID): // the path segment was not valid ObjectID hex
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	case errors.Is(err, repository.ErrNotFound): // well-formed id, no matching document
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	case err != nil:
		c.Logger().Errorf("get product: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

type createProductReq struct {
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	SellerEmail   string  `json:"seller_email"`
	SellerName    string  `json:"seller_name"`
	Status        string  `json:"status"`
	ResalePrice   float64 `json:"resale_price"`
	OriginalPrice float64 `json:"original_price"`
	YearsUsed     int     `json:"years_used"`
	Condition     string  `json:"condition"`
	Image         string  `json:"image"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	Phone         string  `json:"phone"`
}

// CreateProduct handles POST /products.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req createProductReq
	if err := c.Bind(&req); err != nil { // bind the incoming JSON into the request struct
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Brand = strings.TrimSpace(req.Brand)
	req.SellerEmail = strings.ToLower(strings.TrimSpace(req.SellerEmail)) // seller email is stored lowercased
	if req.Name == "" || req.Brand == "" || req.SellerEmail == "" { // the three fields every listing needs
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, brand and seller_email are required"})
	}
	if req.ResalePrice <= 0 { // the asking price must be a positive amount
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "resale_price must be positive"})
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = model.StatusAvailable // new listings default to available
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := &model.Product{
		Name:          req.Name,
		Brand:         req.Brand,
		SellerEmail:   req.SellerEmail,
		SellerName:    req.SellerName,
		Status:        status,
		ResalePrice:   req.ResalePrice,
		OriginalPrice: req.OriginalPrice,
		YearsUsed:     req.YearsUsed,
		Condition:     req.Condition,
		Image:         req.Image,
		Description:   req.Description,
		Location:      req.Location,
		Phone:         req.Phone,
		PostedAt:      time.Now().UTC(),
	}
	id, err := h.Products.Insert(ctx, p)
	if err != nil {
		c.Logger().Errorf("create product: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create product"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"acknowledged": true, "insertedId": id})
}

// DeleteProduct handles DELETE /products/:id.
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Products.Delete(ctx, c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	case err != nil:
		c.Logger().Errorf("delete product: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "deletedCount": 1})
}

// PatchProductStatus handles PATCH /products/:id.  The status value is a
// free string; only presence is validated.
func (h *CatalogHandler) PatchProductStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := strings.TrimSpace(body.Status)
	if status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Products.SetStatus(ctx, c.Param("id"), status)
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	case err != nil:
		c.Logger().Errorf("patch product status: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "modifiedCount": 1})
}
