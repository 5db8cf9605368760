package models

import "time"

type Transaction struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	AppointmentID *uint `json:"appointment_id"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Type     string  `gorm:"size:20;not null" json:"type"`
	Category string  `gorm:"size:50" json:"category"`

	// Data local da barbearia (2006-01-02)
	Date string `gorm:"size:10;index" json:"date"`

	Status        string `gorm:"size:20;default:'paid'" json:"status"`
	PaymentMethod string `gorm:"size:30" json:"payment_method"`

	// ID do pagamento no provedor externo (Mercado Pago)
	ExternalPaymentID string `gorm:"size:64" json:"external_payment_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	TransactionRevenue = "revenue"
	TransactionExpense = "expense"

	TransactionPending   = "pending"
	TransactionPaid      = "paid"
	TransactionCancelled = "cancelled"
)

func (t *Transaction) RowID() uint       { return t.ID }
func (t *Transaction) TenantID() uint    { return t.BarbershopID }
func (t *Transaction) SetTenant(id uint) { t.BarbershopID = id }
