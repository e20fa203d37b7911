package entity

import "time"

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductCreate struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
}

func (u ProductUpdate) Apply(product *Product) {
	if u.Name != nil {
		product.Name = *u.Name
	}
	if u.Description != nil {
		product.Description = *u.Description
	}
	if u.Price != nil {
		product.Price = *u.Price
	}
	if u.Stock != nil {
		product.Stock = *u.Stock
	}
}
