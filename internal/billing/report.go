package billing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GenerateReport reads the ledger for one property and month, allocates the
// collected budget over the property's active spending categories and
// upserts the monthly report for that key.
//
// The whole read-compute-write sequence runs in one transaction, so two
// concurrent calls for the same key cannot interleave and the last writer's
// totals are consistent with what it read. Regenerating overwrites all
// derived fields; the stored note survives unless notes is non-nil. A month
// without obligations yields a valid all-zero report.
func GenerateReport(db *gorm.DB, propertyID uuid.UUID, month types.Month, authorID uuid.UUID, notes *string) (models.MonthlyReport, error) {
	var property models.Property
	err := db.First(&property, propertyID).Error
	if err != nil {
		return models.MonthlyReport{}, err
	}

	var report models.MonthlyReport
	err = db.Transaction(func(tx *gorm.DB) error {
		obligations, err := models.ObligationsFor(tx, property.ID, month)
		if err != nil {
			return err
		}

		totalBudget := decimal.Zero
		pendingAmount := decimal.Zero
		paidTenants := 0
		for _, obligation := range obligations {
			if obligation.Status == models.StatusPaid {
				totalBudget = totalBudget.Add(obligation.Amount)
				paidTenants++
				continue
			}

			pendingAmount = pendingAmount.Add(obligation.Amount)
		}

		categories, err := property.SpendingCategories(tx)
		if err != nil {
			return err
		}

		breakdown, err := Allocate(totalBudget, categories)
		if err != nil {
			return err
		}

		report = models.MonthlyReport{
			PropertyID:    property.ID,
			Month:         month,
			TotalBudget:   totalBudget,
			PendingAmount: pendingAmount,
			TotalTenants:  len(obligations),
			PaidTenants:   paidTenants,
			Breakdown:     breakdown,
			AuthorID:      authorID,
		}

		assignments := []string{"total_budget", "pending_amount", "total_tenants", "paid_tenants", "breakdown", "author_id"}
		if notes != nil {
			report.Note = strings.TrimSpace(*notes)
			assignments = append(assignments, "note")
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "property_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns(assignments),
		}).Create(&report).Error
		if err != nil {
			return err
		}

		// Re-read so that the returned report carries the persisted
		// identity, not the one generated for the conflicting insert.
		// The read goes into a fresh value since gorm would otherwise
		// add the generated primary key to the WHERE clause.
		report = models.MonthlyReport{}
		return tx.
			Where(&models.MonthlyReport{PropertyID: property.ID, Month: month}).
			First(&report).
			Error
	})
	if err != nil {
		return models.MonthlyReport{}, err
	}

	return report, nil
}

// ReviseReport overwrites the editorial fields of an existing report.
//
// It deliberately does not re-derive anything from the ledger and does not
// check that a supplied breakdown reconciles with the stored budget: an
// editor fixing a category label must not be able to change a reported
// total. Callers that want consistent totals regenerate via GenerateReport.
func ReviseReport(db *gorm.DB, id uuid.UUID, notes *string, breakdown *models.AllocationLines) (models.MonthlyReport, error) {
	var report models.MonthlyReport
	err := db.First(&report, id).Error
	if err != nil {
		return models.MonthlyReport{}, err
	}

	updates := map[string]any{}
	if notes != nil {
		updates["note"] = strings.TrimSpace(*notes)
	}
	if breakdown != nil {
		updates["breakdown"] = *breakdown
	}

	if len(updates) == 0 {
		return report, nil
	}

	err = db.Model(&report).Updates(updates).Error
	if err != nil {
		return models.MonthlyReport{}, err
	}

	err = db.First(&report, id).Error
	return report, err
}

// DeleteReport removes a report. This is an administrative override, the
// ledger itself is never touched.
func DeleteReport(db *gorm.DB, id uuid.UUID) error {
	var report models.MonthlyReport
	err := db.First(&report, id).Error
	if err != nil {
		return err
	}

	return db.Delete(&report).Error
}

