package repository

import "gorm.io/gorm"

// ForTenant restringe qualquer consulta à barbearia dona das linhas.
func ForTenant(tenantID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("barbershop_id = ?", tenantID)
	}
}
