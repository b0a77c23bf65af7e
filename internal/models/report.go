package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllocationLine is one category's share of a report's collected budget.
type AllocationLine struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"9a25a35c-c480-4a25-b43d-f7384fca1bc7"` // ID of the spending category
	Category   string          `json:"category" example:"Maintenance"`                            // Name of the spending category at allocation time
	Amount     decimal.Decimal `json:"amount" example:"150.00"`                                   // Amount allocated to the category
	Percent    decimal.Decimal `json:"percent" example:"30.00"`                                   // Realized percentage of the budget
}

// AllocationLines is stored as a JSON column. The breakdown is a snapshot,
// not a relation: revising or regenerating a report replaces it wholesale.
type AllocationLines []AllocationLine

func (a AllocationLines) Value() (driver.Value, error) {
	if a == nil {
		a = AllocationLines{}
	}

	j, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	return string(j), nil
}

func (a *AllocationLines) Scan(value interface{}) error {
	if value == nil {
		*a = AllocationLines{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into AllocationLines", value)
	}

	return json.Unmarshal(data, a)
}

func (AllocationLines) GormDataType() string {
	return "text"
}

// MonthlyReport is the persisted financial snapshot for one property and
// month.
//
// The derived fields (totals, tenant counts, breakdown) are computed from
// the payment ledger and can always be regenerated; regeneration overwrites
// them. Note is editorial and survives regeneration unless the caller
// supplies a new one.
type MonthlyReport struct {
	DefaultModel
	PropertyID    uuid.UUID   `gorm:"uniqueIndex:report_property_month"`
	Property      Property    `json:"-"`
	Month         types.Month `gorm:"uniqueIndex:report_property_month"`
	TotalBudget   decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Sum of paid obligations
	PendingAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Sum of obligations not yet paid
	TotalTenants  int
	PaidTenants   int
	Breakdown     AllocationLines
	Note          string
	AuthorID      uuid.UUID
}

var ErrReportExists = errors.New("a report for this property and month already exists")

func (r *MonthlyReport) BeforeSave(_ *gorm.DB) error {
	r.Note = strings.TrimSpace(r.Note)

	return nil
}
