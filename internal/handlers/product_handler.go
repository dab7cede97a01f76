package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// maxProductImages caps the number of images per upload.
const maxProductImages = 5

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service   *services.ProductService
	validate  *validator.Validate
	uploadDir string
}

// NewProductHandler creates a new ProductHandler. uploadDir is where
// uploaded image files are stored.
func NewProductHandler(service *services.ProductService, uploadDir string) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validate:  validator.New(),
		uploadDir: uploadDir,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, adminRequired fiber.Handler) {
	products := router.Group("/product")
	products.Get("/list", h.HandleListProducts)
	products.Post("/add", adminRequired, h.HandleAddProduct)
	products.Put("/update/:id", adminRequired, h.HandleUpdateProduct)
	products.Get("/:id", h.HandleGetProduct)
	products.Delete("/:id", adminRequired, h.HandleDeleteProduct)
}

// HandleListProducts returns the whole catalog.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
	})
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// jsonList normalizes a multipart field that may arrive as a JSON-encoded
// array string. Returns nil when the field is absent.
func jsonList(value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		// A bare single value is accepted as a one-element list.
		return []string{value}, nil
	}
	return list, nil
}

// saveImages stores uploaded image files and returns their public paths.
func (h *ProductHandler) saveImages(c *fiber.Ctx, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}
	paths := make([]string, 0, len(files))
	for _, file := range files {
		name := uuid.New().String() + filepath.Ext(file.Filename)
		if err := c.SaveFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			return nil, fmt.Errorf("failed to store image %s: %w", file.Filename, err)
		}
		paths = append(paths, "/uploads/"+name)
	}
	return paths, nil
}

// HandleAddProduct creates a product from a multipart form with 1-5
// images. List fields may arrive JSON-encoded and are normalized here
// before the service sees them.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Invalid multipart form")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return badRequest(c, "At least one image is required")
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price <= 0 {
		return badRequest(c, "A positive price is required")
	}
	sizes, _ := jsonList(c.FormValue("sizes"))
	details, _ := jsonList(c.FormValue("details"))

	imagePaths, err := h.saveImages(c, files)
	if err != nil {
		log.Printf("Error storing product images: %v", err)
		return failWith(c, err)
	}

	product := models.Product{
		Name:        c.FormValue("name"),
		Price:       price,
		Category:    c.FormValue("category"),
		SubCategory: c.FormValue("subCategory"),
		Description: c.FormValue("description"),
		Details:     details,
		Sizes:       sizes,
		Images:      imagePaths,
		Bestseller:  c.FormValue("bestseller") == "true",
	}
	if err := h.validate.Struct(product); err != nil {
		return badRequest(c, validationMessage(err))
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// HandleUpdateProduct applies a partial update, appending any newly
// uploaded images and removing the ones named in deleteImages.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	upd := services.ProductUpdate{
		Name:        c.FormValue("name"),
		Category:    c.FormValue("category"),
		SubCategory: c.FormValue("subCategory"),
		Description: c.FormValue("description"),
	}

	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price <= 0 {
			return badRequest(c, "A positive price is required")
		}
		upd.Price = price
	}
	if raw := c.FormValue("bestseller"); raw != "" {
		bestseller := raw == "true"
		upd.Bestseller = &bestseller
	}
	upd.Sizes, _ = jsonList(c.FormValue("sizes"))
	upd.Details, _ = jsonList(c.FormValue("details"))
	upd.DeleteImages, _ = jsonList(c.FormValue("deleteImages"))

	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["images"]; len(files) > 0 {
			paths, err := h.saveImages(c, files)
			if err != nil {
				log.Printf("Error storing product images: %v", err)
				return failWith(c, err)
			}
			upd.AddImages = paths
		}
	}

	product, err := h.service.UpdateProduct(c.Params("id"), upd)
	if err != nil {
		log.Printf("Error updating product %s: %v", c.Params("id"), err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
		"message": "Product updated successfully",
	})
}

// HandleDeleteProduct deletes a product and its stored images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		log.Printf("Error deleting product %s: %v", c.Params("id"), err)
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
