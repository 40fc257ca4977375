// internal/dashboard/farmer.go
package dashboard

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/farmfresh/internal/models"
	"github.com/javajoker/farmfresh/internal/utils"
)

type FarmerProductAPI interface {
	ListMyProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// FarmerDashboard manages the signed-in farmer's own products.
type FarmerDashboard struct {
	api      FarmerProductAPI
	logger   logrus.FieldLogger
	products []models.Product
	state    State
}

func NewFarmerDashboard(api FarmerProductAPI, logger logrus.FieldLogger) *FarmerDashboard {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FarmerDashboard{api: api, logger: logger, products: []models.Product{}}
}

func (d *FarmerDashboard) State() State {
	return d.state
}

func (d *FarmerDashboard) Products() []models.Product {
	return d.products
}

func (d *FarmerDashboard) Load(ctx context.Context) error {
	d.state.begin()
	if err := d.refresh(ctx); err != nil {
		return d.state.fail(err, MsgLoginRequired)
	}
	d.state.succeed("")
	return nil
}

// FormFor pre-fills the edit form from an existing product.
func FormFor(p models.Product) models.ProductRequest {
	return models.ProductRequest{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Image:       p.Image,
	}
}

// SaveProduct creates the product when id is empty and updates it otherwise,
// then reloads the list from the server.
func (d *FarmerDashboard) SaveProduct(ctx context.Context, id string, form models.ProductRequest) error {
	d.state.begin()

	form.Name = strings.TrimSpace(form.Name)
	form.Image = strings.TrimSpace(form.Image)
	if err := utils.ValidateStruct(form); err != nil {
		return d.state.fail(invalid(utils.FirstValidationMessage(err)), MsgLoginRequired)
	}

	var err error
	notice := "Product added successfully!"
	if id == "" {
		_, err = d.api.CreateProduct(ctx, form)
	} else {
		notice = "Product updated successfully!"
		_, err = d.api.UpdateProduct(ctx, id, form)
	}
	if err != nil {
		d.logger.WithError(err).WithField("product_id", id).Warn("Failed to save product")
		return d.state.fail(err, MsgLoginRequired)
	}

	if err := d.refresh(ctx); err != nil {
		return d.state.fail(err, MsgLoginRequired)
	}
	d.state.succeed(notice)
	return nil
}

func (d *FarmerDashboard) DeleteProduct(ctx context.Context, id string) error {
	d.state.begin()
	if id == "" {
		return d.state.fail(invalid("Select a product to delete"), MsgLoginRequired)
	}

	if err := d.api.DeleteProduct(ctx, id); err != nil {
		d.logger.WithError(err).WithField("product_id", id).Warn("Failed to delete product")
		return d.state.fail(err, MsgLoginRequired)
	}

	if err := d.refresh(ctx); err != nil {
		return d.state.fail(err, MsgLoginRequired)
	}
	d.state.succeed("Product deleted successfully!")
	return nil
}

func (d *FarmerDashboard) refresh(ctx context.Context) error {
	products, err := d.api.ListMyProducts(ctx)
	if err != nil {
		d.logger.WithError(err).Warn("Failed to load products")
		return err
	}
	d.products = products
	return nil
}
