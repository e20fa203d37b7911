package entity

import "time"

type Order struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"` // "created" or "cancelled"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderCreate struct {
	UserID    int     `json:"user_id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

type OrderUpdate struct {
	Quantity *int     `json:"quantity"`
	Total    *float64 `json:"total"`
	Status   *string  `json:"status"`
}

func (u OrderUpdate) Apply(order *Order) {
	if u.Quantity != nil {
		order.Quantity = *u.Quantity
	}
	if u.Total != nil {
		order.Total = *u.Total
	}
	if u.Status != nil {
		order.Status = *u.Status
	}
}
