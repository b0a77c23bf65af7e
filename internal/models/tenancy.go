package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenancy links a tenant to a property.
//
// StartDate is the business date the linkage begins. Together with the
// property creation date it determines how far back obligations are
// generated for the pair.
type Tenancy struct {
	DefaultModel
	TenantID   uuid.UUID `gorm:"uniqueIndex:tenancy_tenant_property"`
	Tenant     Tenant    `json:"-"`
	PropertyID uuid.UUID `gorm:"uniqueIndex:tenancy_tenant_property"`
	Property   Property  `json:"-"`
	StartDate  time.Time
	Note       string
}

var ErrTenancyExists = errors.New("this tenant is already linked to the property")

func (t *Tenancy) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Tenancy)
	return t.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies that the referenced tenant and property exist.
func (t *Tenancy) checkIntegrity(tx *gorm.DB, toSave Tenancy) error {
	err := tx.First(&Tenant{}, toSave.TenantID).Error
	if err != nil {
		return err
	}

	return tx.First(&Property{}, toSave.PropertyID).Error
}

func (t *Tenancy) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if t.StartDate.IsZero() {
		t.StartDate = time.Now()
	}

	// Pin the calendar date at UTC midnight. Converting the instant with
	// In(time.UTC) instead could shift the date by one day and with it the
	// first generated month.
	year, month, day := t.StartDate.Date()
	t.StartDate = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	return nil
}
