package catalog

import (
	"time"

	"github.com/MrJamesThe3rd/vitrine/internal/catalog"
)

type productResponse struct {
	ID               int64      `json:"id"`
	CategoryID       *int64     `json:"category_id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Price            string     `json:"price"`
	Stock            int        `json:"stock"`
	AvailableForSale bool       `json:"available_for_sale"`
	Featured         bool       `json:"featured"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

type categoryResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Products []productResponse `json:"products"`
}

func toProductResponse(p *catalog.Product) productResponse {
	return productResponse{
		ID:               p.ID,
		CategoryID:       p.CategoryID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price.StringFixed(2),
		Stock:            p.Stock,
		AvailableForSale: p.AvailableForSale,
		Featured:         p.Featured,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toProductList(products []*catalog.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}

	return resp
}

func toCategoryResponse(c *catalog.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryList(categories []*catalog.Category) []categoryResponse {
	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}

	return resp
}
