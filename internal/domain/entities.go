package domain

import "time"

// Category representa uma linha da tabela de categorias
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Brand representa uma linha da tabela de marcas
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID         int64    `json:"id"`
	CategoryID *int64   `json:"category_id"`
	BrandID    *int64   `json:"brand_id"`
	Name       string   `json:"name"`
	Price      *float64 `json:"price"`
}

type Customer struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Birthdate *time.Time `json:"birthdate"`
}

// Event representa um evento comportamental. TransactionID preenchido marca um evento comercial.
type Event struct {
	VisitorID     int64      `json:"visitor_id"`
	EventType     string     `json:"event_type"`
	ItemID        *int64     `json:"item_id"`
	TransactionID *string    `json:"transaction_id"`
	EventTime     *time.Time `json:"event_time"`
	Date          *time.Time `json:"date"`
}
