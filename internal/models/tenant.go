package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tenant represents a person or company that rents one or more properties.
type Tenant struct {
	DefaultModel
	Name        string
	Note        string
	MonthlyRate decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The rent charged per month. Applies to future obligation generation only.
	Archived    bool
}

var ErrTenantRateNegative = errors.New("the monthly rate must not be negative")

func (t *Tenant) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Note = strings.TrimSpace(t.Note)

	return nil
}

func (t *Tenant) AfterSave(_ *gorm.DB) error {
	if t.MonthlyRate.IsNegative() {
		return ErrTenantRateNegative
	}

	return nil
}
