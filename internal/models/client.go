package models

import "time"

// Cliente da barbearia, sem login próprio
type Client struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	Status     string     `gorm:"size:20;default:'active'" json:"status"`
	Visits     int        `gorm:"default:0" json:"visits"`
	TotalSpent float64    `gorm:"default:0" json:"total_spent"`
	LastVisit  *time.Time `json:"last_visit"`
	Notes      string     `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

func (c *Client) RowID() uint       { return c.ID }
func (c *Client) TenantID() uint    { return c.BarbershopID }
func (c *Client) SetTenant(id uint) { c.BarbershopID = id }
