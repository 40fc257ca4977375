// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/farmfresh/internal/config"
	"github.com/javajoker/farmfresh/internal/models"
)

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Initialize(cfg config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithFields(logrus.Fields{
		"host":     cfg.Host,
		"database": cfg.Database,
	}).Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB, log *logrus.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Error("Error closing database connection")
		return
	}
	log.Info("Database connection closed")
}

func RunMigrations(db *gorm.DB, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	// gen_random_uuid() lives in pgcrypto before PostgreSQL 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db, log)

	log.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB, log *logrus.Logger) {
	indexes := []string{
		// Products
		"CREATE INDEX IF NOT EXISTS idx_products_farmer_created ON products(farmer_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_category_created ON products(category, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('simple', name || ' ' || coalesce(description, '')))",

		// Orders
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_created ON orders(customer_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_farmer_status ON orders(farmer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Audit
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.WithError(err).WithField("statement", index).Warn("Failed to create index")
		}
	}
}

// DemoPassword is the password of every account created by SeedDemoData.
const DemoPassword = "farmfresh123"

// SeedDemoData creates one farmer, one customer and a handful of listings
// when the users table is empty. It is a no-op otherwise.
func SeedDemoData(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		log.Debug("Skipping demo seed, users already exist")
		return nil
	}

	log.Info("Seeding demo data...")

	return WithTransaction(db, func(tx *gorm.DB) error {
		farmer := &models.User{Name: "Ravi Kumar", Email: "farmer@farmfresh.local", Role: models.RoleFarmer}
		customer := &models.User{Name: "Asha Verma", Email: "customer@farmfresh.local", Role: models.RoleCustomer}

		for _, u := range []*models.User{farmer, customer} {
			if err := u.SetPassword(DemoPassword); err != nil {
				return fmt.Errorf("failed to hash demo password: %w", err)
			}
			if err := tx.Create(u).Error; err != nil {
				return fmt.Errorf("failed to create demo user %s: %w", u.Email, err)
			}
		}

		products := []models.Product{
			{Name: "Tomatoes", Description: "Vine ripened, picked this morning", Category: models.CategoryVegetables, Price: decimal.NewFromInt(40), Quantity: 50},
			{Name: "Basmati Rice", Description: "Aged one year", Category: models.CategoryGrains, Price: decimal.NewFromInt(120), Quantity: 30},
			{Name: "Buffalo Milk", Description: "Delivered chilled", Category: models.CategoryDairy, Price: decimal.NewFromInt(60), Quantity: 20},
			{Name: "Alphonso Mangoes", Category: models.CategoryFruits, Price: decimal.RequireFromString("350.50"), Quantity: 12},
			{Name: "Toor Dal", Category: models.CategoryPulses, Price: decimal.NewFromInt(140), Quantity: 25},
			{Name: "Turmeric", Description: "Sun dried, stone ground", Category: models.CategorySpices, Price: decimal.NewFromInt(80), Quantity: 5},
		}
		for i := range products {
			products[i].FarmerID = farmer.ID
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to create demo products: %w", err)
		}

		log.WithField("products", len(products)).Info("Demo data seeded")
		return nil
	})
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
