package models

import "time"

type Professional struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	Specialties []string `gorm:"serializer:json;type:text" json:"specialties"`
	Commission  float64  `gorm:"default:0" json:"commission"`

	// Dias da semana em que atende (0 = domingo ... 6 = sábado)
	WorkDays  []int  `gorm:"serializer:json;type:text" json:"work_days"`
	WorkStart string `gorm:"size:5;default:'09:00'" json:"work_start"`
	WorkEnd   string `gorm:"size:5;default:'18:00'" json:"work_end"`
	PhotoURL  string `gorm:"size:255" json:"photo_url"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Professional) RowID() uint       { return p.ID }
func (p *Professional) TenantID() uint    { return p.BarbershopID }
func (p *Professional) SetTenant(id uint) { p.BarbershopID = id }
