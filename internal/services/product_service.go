// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/farmfresh/internal/models"
)

type ProductService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewProductService(db *gorm.DB, logger *logrus.Logger) *ProductService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProductService{db: db, logger: logger}
}

// ListProducts returns the whole catalog, newest first. Filtering happens client-side.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) ListFarmerProducts(ctx context.Context, farmerID string) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Where("farmer_id = ?", farmerID).
		Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list farmer products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, farmerID string, req *models.ProductRequest) (*models.Product, error) {
	product := &models.Product{FarmerID: farmerID}
	applyProductRequest(product, req)

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": product.ID,
		"farmer_id":  farmerID,
	}).Info("Product created")
	return product, nil
}

// UpdateProduct replaces every editable field. Only the owning farmer may update.
func (s *ProductService) UpdateProduct(ctx context.Context, id, farmerID string, req *models.ProductRequest) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.FarmerID != farmerID {
		return nil, ErrNotOwner
	}

	applyProductRequest(product, req)
	updates := map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"category":    product.Category,
		"price":       product.Price,
		"quantity":    product.Quantity,
		"image":       product.Image,
	}
	if err := s.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteProduct soft-deletes the product; existing orders keep their snapshots.
func (s *ProductService) DeleteProduct(ctx context.Context, id, farmerID string) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if product.FarmerID != farmerID {
		return ErrNotOwner
	}

	if err := s.db.WithContext(ctx).Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": id,
		"farmer_id":  farmerID,
	}).Info("Product deleted")
	return nil
}

func applyProductRequest(p *models.Product, req *models.ProductRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Description = strings.TrimSpace(req.Description)
	p.Category = req.Category
	p.Price = req.Price.Round(2)
	p.Quantity = req.Quantity
	p.Image = strings.TrimSpace(req.Image)
}
