package models

import "time"

type Product struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Stock       int     `gorm:"default:0" json:"stock"`
	MinStock    int     `gorm:"default:0" json:"min_stock"`
	Category    string  `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) RowID() uint       { return p.ID }
func (p *Product) TenantID() uint    { return p.BarbershopID }
func (p *Product) SetTenant(id uint) { p.BarbershopID = id }
