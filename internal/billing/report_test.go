package billing_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/billing"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reportFixture sets up one property with categories and three tenants whose
// March obligations are paid, pending and overdue.
func (suite *TestSuiteStandard) reportFixture() (models.Property, types.Month) {
	property := suite.createTestProperty(models.Property{})
	month := types.NewMonth(2025, time.March)

	suite.createTestCategory(models.SpendingCategory{PropertyID: property.ID, Name: "Maintenance", Weight: decimal.NewFromInt(30)})
	suite.createTestCategory(models.SpendingCategory{PropertyID: property.ID, Name: "Utilities", Weight: decimal.NewFromInt(10)})

	for i, status := range []models.ObligationStatus{models.StatusPaid, models.StatusPending, models.StatusOverdue} {
		tenant := suite.createTestTenant(models.Tenant{MonthlyRate: decimal.NewFromFloat(500)})

		obligation := suite.createTestObligation(models.PaymentObligation{
			TenantID:   tenant.ID,
			PropertyID: property.ID,
			Month:      month,
			Amount:     decimal.NewFromFloat(float64(100 * (i + 1))),
		})

		if status != models.StatusPending {
			updates := map[string]any{"status": status}
			if status == models.StatusPaid {
				updates["payment_date"] = time.Now().In(time.UTC)
			}
			require.Nil(suite.T(), models.DB.Model(&obligation).Updates(updates).Error)
		}
	}

	return property, month
}

func (suite *TestSuiteStandard) TestGenerateReport() {
	property, month := suite.reportFixture()

	report, err := billing.GenerateReport(models.DB, property.ID, month, uuid.Nil, nil)
	require.Nil(suite.T(), err)

	// Only the paid obligation (100.00) counts towards the budget, the
	// pending (200.00) and overdue (300.00) ones are outstanding.
	assert.True(suite.T(), report.TotalBudget.Equal(decimal.NewFromFloat(100)), "got %s", report.TotalBudget)
	assert.True(suite.T(), report.PendingAmount.Equal(decimal.NewFromFloat(500)), "got %s", report.PendingAmount)
	assert.Equal(suite.T(), 3, report.TotalTenants)
	assert.Equal(suite.T(), 1, report.PaidTenants)

	require.Len(suite.T(), report.Breakdown, 2)
	assert.Equal(suite.T(), "Maintenance", report.Breakdown[0].Category)
	assert.True(suite.T(), report.Breakdown[0].Amount.Equal(decimal.NewFromFloat(75)), "got %s", report.Breakdown[0].Amount)
	assert.True(suite.T(), report.Breakdown[1].Amount.Equal(decimal.NewFromFloat(25)), "got %s", report.Breakdown[1].Amount)
}

func (suite *TestSuiteStandard) TestGenerateReportEmptyMonth() {
	property := suite.createTestProperty(models.Property{})

	report, err := billing.GenerateReport(models.DB, property.ID, types.NewMonth(2025, time.June), uuid.Nil, nil)
	require.Nil(suite.T(), err)

	assert.True(suite.T(), report.TotalBudget.IsZero())
	assert.True(suite.T(), report.PendingAmount.IsZero())
	assert.Equal(suite.T(), 0, report.TotalTenants)
	assert.Equal(suite.T(), 0, report.PaidTenants)
	assert.Len(suite.T(), report.Breakdown, 0)
}

func (suite *TestSuiteStandard) TestGenerateReportPropertyNotFound() {
	_, err := billing.GenerateReport(models.DB, uuid.New(), types.NewMonth(2025, time.June), uuid.Nil, nil)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

// Regeneration overwrites the derived fields but keeps the stored note when
// no note is supplied.
func (suite *TestSuiteStandard) TestGenerateReportRegenerate() {
	property, month := suite.reportFixture()

	notes := "reviewed by accounting"
	first, err := billing.GenerateReport(models.DB, property.ID, month, uuid.Nil, &notes)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "reviewed by accounting", first.Note)

	// Settle the overdue obligation after generation
	var overdue models.PaymentObligation
	require.Nil(suite.T(), models.DB.Where("status = ?", models.StatusOverdue).First(&overdue).Error)
	_, err = billing.SetObligationStatus(models.DB, overdue.ID, models.StatusPaid, nil)
	require.Nil(suite.T(), err)

	// The stored report is a snapshot, the ledger change does not reach it
	var stored models.MonthlyReport
	require.Nil(suite.T(), models.DB.First(&stored, first.ID).Error)
	assert.True(suite.T(), stored.TotalBudget.Equal(first.TotalBudget))

	second, err := billing.GenerateReport(models.DB, property.ID, month, uuid.Nil, nil)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), first.ID, second.ID, "regeneration must update the same report")
	assert.True(suite.T(), second.TotalBudget.Equal(decimal.NewFromFloat(400)), "got %s", second.TotalBudget)
	assert.True(suite.T(), second.PendingAmount.Equal(decimal.NewFromFloat(200)), "got %s", second.PendingAmount)
	assert.Equal(suite.T(), 2, second.PaidTenants)
	assert.Equal(suite.T(), "reviewed by accounting", second.Note, "the note survives regeneration")

	// An explicit note replaces the stored one
	notes = "corrected"
	third, err := billing.GenerateReport(models.DB, property.ID, month, uuid.Nil, &notes)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "corrected", third.Note)
}

func (suite *TestSuiteStandard) TestReviseReport() {
	property, month := suite.reportFixture()

	report, err := billing.GenerateReport(models.DB, property.ID, month, uuid.Nil, nil)
	require.Nil(suite.T(), err)

	// Supplying nothing is a no-op
	unchanged, err := billing.ReviseReport(models.DB, report.ID, nil, nil)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), report.Note, unchanged.Note)
	assert.Equal(suite.T(), len(report.Breakdown), len(unchanged.Breakdown))

	// A note patch leaves the breakdown alone
	notes := "  adjusted for late fees  "
	revised, err := billing.ReviseReport(models.DB, report.ID, &notes, nil)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "adjusted for late fees", revised.Note)
	assert.Equal(suite.T(), len(report.Breakdown), len(revised.Breakdown))

	// A breakdown patch replaces it wholesale without touching totals
	breakdown := models.AllocationLines{
		{CategoryID: report.Breakdown[0].CategoryID, Category: "Repairs", Amount: decimal.NewFromFloat(100), Percent: decimal.NewFromFloat(100)},
	}
	revised, err = billing.ReviseReport(models.DB, report.ID, nil, &breakdown)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), revised.Breakdown, 1)
	assert.Equal(suite.T(), "Repairs", revised.Breakdown[0].Category)
	assert.Equal(suite.T(), "adjusted for late fees", revised.Note)
	assert.True(suite.T(), revised.TotalBudget.Equal(report.TotalBudget))
}

func (suite *TestSuiteStandard) TestReviseReportNotFound() {
	notes := "nope"
	_, err := billing.ReviseReport(models.DB, uuid.New(), &notes, nil)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDeleteReport() {
	property, month := suite.reportFixture()

	report, err := billing.GenerateReport(models.DB, property.ID, month, uuid.Nil, nil)
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), billing.DeleteReport(models.DB, report.ID))

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.MonthlyReport{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)

	assert.ErrorIs(suite.T(), billing.DeleteReport(models.DB, report.ID), models.ErrResourceNotFound)
}
