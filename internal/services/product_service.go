package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"kedai/internal/models"
	"kedai/internal/repositories"
)

// uploadPrefix is the public path prefix under which product images are
// served and stored.
const uploadPrefix = "/uploads/"

// ProductService handles business logic related to products, including
// the image files that belong to them.
type ProductService struct {
	repo       repositories.ProductRepository
	uploadRoot string
}

// NewProductService creates a new ProductService. uploadRoot is the
// directory backing the /uploads/ path prefix.
func NewProductService(repo repositories.ProductRepository, uploadRoot string) *ProductService {
	return &ProductService{
		repo:       repo,
		uploadRoot: uploadRoot,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return product, nil
}

// CreateProduct creates a new product. At least one image is required.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if len(product.Images) == 0 {
		return fmt.Errorf("%w: at least one image is required", ErrInvalidInput)
	}
	if product.SubCategory == "" {
		product.SubCategory = product.Category
	}
	return s.repo.Create(product)
}

// ProductUpdate carries a partial product update. Zero-valued fields keep
// the existing value; nil slices keep the existing lists.
type ProductUpdate struct {
	Name         string
	Price        float64
	Category     string
	SubCategory  string
	Description  string
	Details      []string
	Sizes        []string
	Bestseller   *bool
	AddImages    []string
	DeleteImages []string
}

// UpdateProduct applies a partial update. Newly uploaded images are
// appended, deleted images are removed from the record and from disk, and
// the product must keep at least one image.
func (s *ProductService) UpdateProduct(id string, upd ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	images := append(models.StringList{}, product.Images...)
	images = append(images, upd.AddImages...)

	var removed []string
	for _, del := range upd.DeleteImages {
		for i, img := range images {
			if img == del {
				images = append(images[:i], images[i+1:]...)
				removed = append(removed, del)
				break
			}
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: product must have at least one image", ErrInvalidInput)
	}

	if upd.Name != "" {
		product.Name = upd.Name
	}
	if upd.Price > 0 {
		product.Price = upd.Price
	}
	if upd.Category != "" {
		product.Category = upd.Category
	}
	if upd.SubCategory != "" {
		product.SubCategory = upd.SubCategory
	}
	if upd.Description != "" {
		product.Description = upd.Description
	}
	if upd.Details != nil {
		product.Details = upd.Details
	}
	if upd.Sizes != nil {
		product.Sizes = upd.Sizes
	}
	if upd.Bestseller != nil {
		product.Bestseller = *upd.Bestseller
	}
	product.Images = images

	if err := s.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	// Only unlink files after the record update succeeded.
	for _, img := range removed {
		s.removeImageFile(img)
	}
	return product, nil
}

// DeleteProduct deletes a product and removes its stored image files.
func (s *ProductService) DeleteProduct(id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	for _, img := range product.Images {
		s.removeImageFile(img)
	}
	return nil
}

// removeImageFile unlinks a stored image. Paths outside the upload prefix
// are ignored.
func (s *ProductService) removeImageFile(path string) {
	if !strings.HasPrefix(path, uploadPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(path, uploadPrefix))
	full := filepath.Join(s.uploadRoot, name)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove image file %s: %v", full, err)
	}
}
