package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"inventory/internal/catalog"
	"inventory/internal/models"
	"inventory/internal/query"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/pkg/logger"
)

// ProductResponse is the wire form of a product. TotalValue and IsAvailable
// are computed when the response is built.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Stock       int64     `json:"stock"`
	TotalValue  string    `json:"totalValue"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(catalog.PricePlaces),
		Stock:       p.Stock,
		TotalValue:  catalog.TotalValue(p).StringFixed(catalog.PricePlaces),
		IsAvailable: catalog.IsAvailable(p),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *logger.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logger.Logger) *ProductHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/available", h.HandleFindAvailable)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts lists all products. The optional sort query parameter
// takes name, price or createdAt, with a leading '-' for descending order.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	order, err := query.ParseSort(c.Query("sort"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid sort parameter",
			"error":   err.Error(),
		})
	}
	products, err := h.service.ListProducts(c.UserContext(), order)
	if err != nil {
		return h.fail(c, "Could not retrieve products", err)
	}
	return c.JSON(toProductResponses(products))
}

// HandleFindAvailable lists products that have stock.
func (h *ProductHandler) HandleFindAvailable(c *fiber.Ctx) error {
	products, err := h.service.FindAvailable(c.UserContext())
	if err != nil {
		return h.fail(c, "Could not retrieve available products", err)
	}
	return c.JSON(toProductResponses(products))
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Could not retrieve product", err)
	}
	return c.JSON(toProductResponse(*product))
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var candidate catalog.Candidate
	if err := c.BodyParser(&candidate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.CreateProduct(c.UserContext(), candidate)
	if err != nil {
		return h.fail(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(*product))
}

// HandleUpdateProduct applies a partial update; omitted fields keep their
// stored values.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var patch catalog.Candidate
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return h.fail(c, "Could not update product", err)
	}
	return c.JSON(toProductResponse(*product))
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(c.UserContext(), productID); err != nil {
		return h.fail(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", productID),
	})
}

// fail maps service errors onto HTTP responses.
func (h *ProductHandler) fail(c *fiber.Ctx, message string, err error) error {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message":    "Validation failed",
			"violations": verr.Violations,
		})
	case errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", c.Params("id")),
		})
	case errors.Is(err, query.ErrUnsupported):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg(message)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
