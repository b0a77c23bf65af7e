package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
	"gorm.io/gorm"
)

type transition struct {
	from models.ObligationStatus
	to   models.ObligationStatus
}

// The allowed lifecycle transitions. paid -> pending is the manual
// correction path; everything not listed leaves the record unchanged.
var allowedTransitions = map[transition]bool{
	{models.StatusPending, models.StatusPaid}:    true,
	{models.StatusPending, models.StatusOverdue}: true,
	{models.StatusOverdue, models.StatusPaid}:    true,
	{models.StatusPaid, models.StatusPending}:    true,
}

// SetObligationStatus transitions an obligation through its lifecycle.
//
// On a transition into paid the payment date is set to the supplied
// settlement date, defaulting to now. On a transition out of paid it is
// cleared. A transition that is not allowed is a no-op and returns the
// unchanged record.
func SetObligationStatus(db *gorm.DB, id uuid.UUID, status models.ObligationStatus, paymentDate *time.Time) (models.PaymentObligation, error) {
	if !status.Valid() {
		return models.PaymentObligation{}, fmt.Errorf("%w, got %q", models.ErrObligationStatusInvalid, status)
	}

	var obligation models.PaymentObligation
	err := db.First(&obligation, id).Error
	if err != nil {
		return models.PaymentObligation{}, err
	}

	if !allowedTransitions[transition{obligation.Status, status}] {
		return obligation, nil
	}

	updates := map[string]any{"status": status}

	if status == models.StatusPaid {
		settled := time.Now().In(time.UTC)
		if paymentDate != nil {
			settled = paymentDate.In(time.UTC)
		}
		updates["payment_date"] = settled
	} else if obligation.Status == models.StatusPaid {
		updates["payment_date"] = nil
	}

	err = db.Model(&obligation).Updates(updates).Error
	if err != nil {
		return models.PaymentObligation{}, err
	}

	err = db.First(&obligation, id).Error
	return obligation, err
}

// MarkOverdue flips all pending obligations for months before asOf to
// overdue and returns how many were affected.
func MarkOverdue(db *gorm.DB, asOf types.Month) (int64, error) {
	result := db.Model(&models.PaymentObligation{}).
		Where("status = ? AND month < ?", models.StatusPending, asOf).
		Update("status", models.StatusOverdue)

	return result.RowsAffected, result.Error
}
