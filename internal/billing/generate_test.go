package billing_test

import (
	"time"

	"github.com/rentledger/backend/internal/billing"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBackfillStart() {
	earlier := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	tenancy := models.Tenancy{StartDate: earlier}
	property := models.Property{}
	property.CreatedAt = later
	assert.Equal(suite.T(), later, billing.BackfillStart(tenancy, property))

	tenancy = models.Tenancy{StartDate: later}
	property = models.Property{}
	property.CreatedAt = earlier
	assert.Equal(suite.T(), later, billing.BackfillStart(tenancy, property))
}

// A tenancy starting mid-January that is backfilled through April gets one
// obligation for each of the four months, at the rate rounded to cents.
func (suite *TestSuiteStandard) TestEnsureObligationsBackfill() {
	tenant := suite.createTestTenant(models.Tenant{MonthlyRate: decimal.NewFromFloat(500)})
	property := suite.createTestProperty(models.Property{})

	from := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	through := types.NewMonth(2025, time.April)

	created, err := billing.EnsureObligations(models.DB, tenant, property, from, through)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 4, created)

	var obligations []models.PaymentObligation
	err = models.DB.Order("month ASC").Find(&obligations).Error
	require.Nil(suite.T(), err)
	require.Len(suite.T(), obligations, 4)

	assert.Equal(suite.T(), types.NewMonth(2025, time.January), obligations[0].Month)
	assert.Equal(suite.T(), types.NewMonth(2025, time.April), obligations[3].Month)

	for _, obligation := range obligations {
		assert.True(suite.T(), obligation.Amount.Equal(decimal.NewFromFloat(500)), "got %s", obligation.Amount)
		assert.Equal(suite.T(), models.StatusPending, obligation.Status)
	}
}

func (suite *TestSuiteStandard) TestEnsureObligationsIdempotent() {
	tenant := suite.createTestTenant(models.Tenant{MonthlyRate: decimal.NewFromFloat(850)})
	property := suite.createTestProperty(models.Property{})

	from := time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)
	through := types.NewMonth(2025, time.February)

	created, err := billing.EnsureObligations(models.DB, tenant, property, from, through)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 4, created, "November through February spans the year boundary")

	// Running the same range again must not create or change anything
	created, err = billing.EnsureObligations(models.DB, tenant, property, from, through)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, created)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.PaymentObligation{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(4), count)
}

// Existing obligations keep their amount and status, only missing months
// are filled in.
func (suite *TestSuiteStandard) TestEnsureObligationsKeepsExisting() {
	tenant := suite.createTestTenant(models.Tenant{MonthlyRate: decimal.NewFromFloat(600)})
	property := suite.createTestProperty(models.Property{})

	paid := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	existing := suite.createTestObligation(models.PaymentObligation{
		TenantID:    tenant.ID,
		PropertyID:  property.ID,
		Month:       types.NewMonth(2025, time.February),
		Amount:      decimal.NewFromFloat(550),
		Status:      models.StatusPaid,
		PaymentDate: &paid,
	})

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	created, err := billing.EnsureObligations(models.DB, tenant, property, from, types.NewMonth(2025, time.March))
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 2, created, "only January and March are missing")

	var reloaded models.PaymentObligation
	require.Nil(suite.T(), models.DB.First(&reloaded, existing.ID).Error)
	assert.True(suite.T(), reloaded.Amount.Equal(decimal.NewFromFloat(550)), "the stored amount must not change")
	assert.Equal(suite.T(), models.StatusPaid, reloaded.Status)
}

func (suite *TestSuiteStandard) TestEnsureObligationsRate() {
	property := suite.createTestProperty(models.Property{})
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	through := types.NewMonth(2025, time.March)

	zeroRate := suite.createTestTenant(models.Tenant{})
	_, err := billing.EnsureObligations(models.DB, zeroRate, property, from, through)
	assert.ErrorIs(suite.T(), err, billing.ErrRateNotPositive)
}

func (suite *TestSuiteStandard) TestEnsureObligationsRangeInverted() {
	tenant := suite.createTestTenant(models.Tenant{MonthlyRate: decimal.NewFromFloat(500)})
	property := suite.createTestProperty(models.Property{})

	from := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	_, err := billing.EnsureObligations(models.DB, tenant, property, from, types.NewMonth(2025, time.January))
	assert.ErrorIs(suite.T(), err, billing.ErrRangeInverted)
}

func (suite *TestSuiteStandard) TestGenerateFutureObligations() {
	tenant := suite.createTestTenant(models.Tenant{MonthlyRate: decimal.NewFromFloat(720.50)})
	property := suite.createTestProperty(models.Property{})

	created, err := billing.GenerateFutureObligations(models.DB, tenant, property, 6)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 6, created)

	var obligations []models.PaymentObligation
	require.Nil(suite.T(), models.DB.Order("month ASC").Find(&obligations).Error)
	require.Len(suite.T(), obligations, 6)

	current := types.MonthOf(time.Now())
	assert.Equal(suite.T(), current, obligations[0].Month)
	assert.Equal(suite.T(), current.AddDate(0, 5), obligations[5].Month)
}

func (suite *TestSuiteStandard) TestGenerateFutureObligationsRange() {
	tenant := suite.createTestTenant(models.Tenant{MonthlyRate: decimal.NewFromFloat(500)})
	property := suite.createTestProperty(models.Property{})

	for _, monthsAhead := range []int{0, -1, billing.MaxMonthsAhead + 1} {
		_, err := billing.GenerateFutureObligations(models.DB, tenant, property, monthsAhead)
		assert.ErrorIs(suite.T(), err, billing.ErrMonthsAheadRange, "monthsAhead %d", monthsAhead)
	}

	created, err := billing.GenerateFutureObligations(models.DB, tenant, property, 1)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, created)
}
