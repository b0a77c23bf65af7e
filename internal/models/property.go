package models

import (
	"errors"
	"strings"

	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Property represents a managed rental property.
type Property struct {
	DefaultModel
	Name     string
	Address  string
	Note     string
	Currency string // ISO 4217 code for all amounts on this property
	Archived bool
}

var ErrPropertyCurrencyInvalid = errors.New("the currency must be a valid ISO 4217 code")

func (p *Property) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	p.Note = strings.TrimSpace(p.Note)

	if p.Currency == "" {
		p.Currency = "EUR"
	}

	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if _, err := currency.ParseISO(p.Currency); err != nil {
		return ErrPropertyCurrencyInvalid
	}

	return nil
}

// SpendingCategories returns the active spending categories for the property,
// ordered by name. This is the configuration the report aggregator reads at
// generation time.
func (p Property) SpendingCategories(db *gorm.DB) ([]SpendingCategory, error) {
	var categories []SpendingCategory

	err := db.
		Where(&SpendingCategory{PropertyID: p.ID}).
		Where("archived = ?", false).
		Order("name ASC").
		Find(&categories).
		Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}
