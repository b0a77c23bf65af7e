package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ObligationStatus is the lifecycle state of a payment obligation.
type ObligationStatus string

const (
	StatusPending ObligationStatus = "pending"
	StatusPaid    ObligationStatus = "paid"
	StatusOverdue ObligationStatus = "overdue"
)

func (s ObligationStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid || s == StatusOverdue
}

// PaymentObligation is one tenant's rent charge for one property for one
// calendar month.
//
// The amount is fixed at generation time: rate changes on the tenant never
// alter obligations that already exist. The unique index over tenant,
// property and month is what makes obligation generation idempotent, see
// ErrObligationExists.
type PaymentObligation struct {
	DefaultModel
	TenantID    uuid.UUID   `gorm:"uniqueIndex:obligation_tenant_property_month"`
	Tenant      Tenant      `json:"-"`
	PropertyID  uuid.UUID   `gorm:"uniqueIndex:obligation_tenant_property_month"`
	Property    Property    `json:"-"`
	Month       types.Month `gorm:"uniqueIndex:obligation_tenant_property_month"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Status      ObligationStatus
	PaymentDate *time.Time // Set on transition into paid, cleared on transition out
	Note        string
}

var (
	ErrObligationExists          = errors.New("an obligation for this tenant, property and month already exists")
	ErrObligationStatusInvalid   = errors.New("the obligation status must be one of pending, paid, overdue")
	ErrObligationAmountImmutable = errors.New("the amount of an obligation cannot be changed after creation")
)

func (o *PaymentObligation) BeforeSave(_ *gorm.DB) error {
	o.Note = strings.TrimSpace(o.Note)

	if o.Status == "" {
		o.Status = StatusPending
	}

	if !o.Status.Valid() {
		return fmt.Errorf("%w, got %q", ErrObligationStatusInvalid, o.Status)
	}

	return nil
}

func (o *PaymentObligation) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Amount") {
		return ErrObligationAmountImmutable
	}

	return nil
}

// ObligationsFor returns all obligations of a property for one month.
func ObligationsFor(db *gorm.DB, propertyID uuid.UUID, month types.Month) ([]PaymentObligation, error) {
	var obligations []PaymentObligation

	err := db.
		Where(&PaymentObligation{PropertyID: propertyID, Month: month}).
		Order("created_at ASC").
		Find(&obligations).
		Error
	if err != nil {
		return nil, err
	}

	return obligations, nil
}
