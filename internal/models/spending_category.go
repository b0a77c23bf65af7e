package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SpendingCategory is a named spending bucket on a property with a
// percentage weight. The weights do not have to sum to 100; the allocation
// resolver reports the percentage it actually realized.
type SpendingCategory struct {
	DefaultModel
	PropertyID uuid.UUID       `gorm:"uniqueIndex:category_property_name"`
	Property   Property        `json:"-"`
	Name       string          `gorm:"uniqueIndex:category_property_name"`
	Weight     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Percentage weight, >= 0
	Archived   bool
}

var (
	ErrCategoryNameNotUnique  = errors.New("spending category names must be unique per property")
	ErrCategoryWeightNegative = errors.New("spending category weights must not be negative")
)

func (s *SpendingCategory) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*SpendingCategory)
	return tx.First(&Property{}, toSave.PropertyID).Error
}

func (s *SpendingCategory) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)

	return nil
}

func (s *SpendingCategory) AfterSave(_ *gorm.DB) error {
	if s.Weight.IsNegative() {
		return ErrCategoryWeightNegative
	}

	return nil
}
