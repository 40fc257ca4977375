// internal/models/requests.go
package models

import "github.com/shopspring/decimal"

// Wire types shared by the API server and the client.

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,role"`
	Phone    string `json:"phone" validate:"required,max=30"`
	Address  string `json:"address" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Message   string `json:"message,omitempty"`
	Token     string `json:"token"`
	TokenType string `json:"token_type,omitempty"`
	ExpiresIn int    `json:"expires_in,omitempty"` // in seconds
	User      User   `json:"user"`
}

// ProductRequest is the full product form; updates replace every field.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	Category    Category        `json:"category" validate:"required,category"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Image       string          `json:"image,omitempty" validate:"omitempty,url"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
}

type OrderItemRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type PlaceOrderRequest struct {
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryType DeliveryType       `json:"deliveryType" validate:"required,delivery_type"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,order_status"`
}
