// Package billing implements the recurring tenant-billing and monthly
// reporting engine on top of the payment ledger in models.
package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
	"gorm.io/gorm"
)

// MaxMonthsAhead caps forward-fill so that a typo cannot queue up an
// unbounded amount of writes.
const MaxMonthsAhead = 24

// BackfillStart returns the first business date for which obligations are
// generated for a tenancy: the later of the tenancy start date and the
// property creation date.
func BackfillStart(tenancy models.Tenancy, property models.Property) time.Time {
	if property.CreatedAt.After(tenancy.StartDate) {
		return property.CreatedAt
	}

	return tenancy.StartDate
}

// EnsureObligations creates the missing payment obligations for a tenant and
// property for every month from the month of `from` through `through`.
//
// Generation is idempotent: a month that already has an obligation is left
// untouched no matter what state that obligation is in, and a concurrent
// insert of the same month counts as success. The amount of every created
// obligation is the tenant's monthly rate at call time.
//
// It returns the number of obligations that were created.
func EnsureObligations(db *gorm.DB, tenant models.Tenant, property models.Property, from time.Time, through types.Month) (int, error) {
	if !tenant.MonthlyRate.IsPositive() {
		return 0, fmt.Errorf("%w: tenant %s", ErrRateNotPositive, tenant.ID)
	}

	start := types.MonthOf(from)
	if through.Before(start) {
		return 0, fmt.Errorf("%w: %s is before %s", ErrRangeInverted, through, start)
	}

	amount := tenant.MonthlyRate.Round(2)

	created := 0
	for _, month := range start.MonthsThrough(through) {
		obligation := models.PaymentObligation{
			TenantID:   tenant.ID,
			PropertyID: property.ID,
			Month:      month,
			Amount:     amount,
			Status:     models.StatusPending,
		}

		err := db.Create(&obligation).Error
		if err != nil {
			// The obligation already existing is the state we want
			if errors.Is(err, models.ErrObligationExists) {
				continue
			}

			return created, err
		}

		created++
	}

	return created, nil
}

// GenerateFutureObligations forward-fills obligations for monthsAhead
// consecutive months, starting with the current month.
func GenerateFutureObligations(db *gorm.DB, tenant models.Tenant, property models.Property, monthsAhead int) (int, error) {
	if monthsAhead < 1 || monthsAhead > MaxMonthsAhead {
		return 0, fmt.Errorf("%w, got %d", ErrMonthsAheadRange, monthsAhead)
	}

	now := time.Now()
	through := types.MonthOf(now).AddDate(0, monthsAhead-1)

	return EnsureObligations(db, tenant, property, now, through)
}
