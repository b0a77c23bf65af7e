package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/rentledger/backend/internal/controllers/v1"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
	"github.com/rentledger/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestObligationsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestObligationsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/obligations", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.ObligationListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
		{
			"Sweep fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodPost, "http://example.com/v1/obligations/mark-overdue", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestObligationsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestObligationsOptions() {
	tenancy := createTestTenancy(suite.T(), v1.TenancyEditable{})
	obligations := backfillTestTenancy(suite.T(), tenancy)
	require.NotEmpty(suite.T(), obligations)

	tests := []struct {
		name   string
		id     string // path at the Obligations endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Obligation with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Obligation exists", obligations[0].ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/obligations", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH", r.Header().Get("allow"), "obligations cannot be deleted, the ledger is append only")
			}
		})
	}
}

func (suite *TestSuiteStandard) TestObligationsGetSingle() {
	tenancy := createTestTenancy(suite.T(), v1.TenancyEditable{})
	obligations := backfillTestTenancy(suite.T(), tenancy)
	require.NotEmpty(suite.T(), obligations)

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing Obligation", obligations[0].ID.String(), http.StatusOK},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"No Obligation with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/obligations/%s", tt.id), "")

			var response v1.ObligationResponse
			test.DecodeResponse(t, &r, &response)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusOK {
				assert.Equal(t, models.StatusPending, response.Data.Status)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestObligationsGetFilter() {
	start := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)

	t1 := createTestTenancy(suite.T(), v1.TenancyEditable{StartDate: start})
	o1 := backfillTestTenancy(suite.T(), t1)

	// Give one obligation a note so that the text filters have a match
	r := test.Request(suite.T(), http.MethodPatch, o1[0].Links.Self, map[string]any{"note": "cash, delivered late"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	t2 := createTestTenancy(suite.T(), v1.TenancyEditable{
		PropertyID: t1.Data.PropertyID,
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	_ = backfillTestTenancy(suite.T(), t2)

	monthsSince := func(year int, month time.Month) int {
		return len(types.NewMonth(year, month).MonthsThrough(types.MonthOf(time.Now())))
	}

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Tenant 1", fmt.Sprintf("tenant=%s", t1.Data.TenantID), monthsSince(2024, time.November)},
		{"Tenant 2", fmt.Sprintf("tenant=%s", t2.Data.TenantID), monthsSince(2025, time.January)},
		{"Property", fmt.Sprintf("property=%s&limit=-1", t1.Data.PropertyID), monthsSince(2024, time.November) + monthsSince(2025, time.January)},
		{"Year 2024", "year=2024", 2},
		{"Status pending", fmt.Sprintf("status=pending&tenant=%s&limit=-1", t1.Data.TenantID), monthsSince(2024, time.November)},
		{"Status paid", "status=paid", 0},
		{"Note", "note=delivered", 1},
		{"Search", "search=CASH", 1},
		{"Search without match", "search=transfer", 0},
		{"Unknown tenant", "tenant=c9e4ee7a-e702-4f92-b168-11a95b22c7aa", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.ObligationListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/obligations?%s", tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.len, len(response.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestObligationsGetFilterInvalid() {
	tests := []struct {
		name  string
		query string
	}{
		{"Invalid tenant UUID", "tenant=notaUUID"},
		{"Invalid status", "status=settled"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/obligations?%s", tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}

// TestObligationsUpdate verifies the lifecycle updates on an obligation.
func (suite *TestSuiteStandard) TestObligationsUpdate() {
	tenancy := createTestTenancy(suite.T(), v1.TenancyEditable{})
	obligations := backfillTestTenancy(suite.T(), tenancy)
	require.NotEmpty(suite.T(), obligations)

	selfURL := obligations[0].Links.Self

	// Set a note without touching the status
	r := test.Request(suite.T(), http.MethodPatch, selfURL, map[string]any{"note": "Paid in cash"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ObligationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Paid in cash", response.Data.Note)
	assert.Equal(suite.T(), models.StatusPending, response.Data.Status)

	// Mark as paid, the payment date defaults to now
	r = test.Request(suite.T(), http.MethodPatch, selfURL, map[string]any{"status": "paid"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.StatusPaid, response.Data.Status)
	require.NotNil(suite.T(), response.Data.PaymentDate)
	assert.WithinDuration(suite.T(), time.Now(), *response.Data.PaymentDate, time.Minute)
	assert.Equal(suite.T(), "Paid in cash", response.Data.Note, "the note survives a status change")

	// Revert to pending, the payment date is cleared
	r = test.Request(suite.T(), http.MethodPatch, selfURL, map[string]any{"status": "pending"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.StatusPending, response.Data.Status)
	assert.Nil(suite.T(), response.Data.PaymentDate)

	// Mark as paid with an explicit payment date
	r = test.Request(suite.T(), http.MethodPatch, selfURL, map[string]any{
		"status":      "paid",
		"paymentDate": "2025-03-07T00:00:00Z",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data.PaymentDate)
	assert.True(suite.T(), response.Data.PaymentDate.Equal(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)))

	// A disallowed transition leaves the record unchanged
	r = test.Request(suite.T(), http.MethodPatch, selfURL, map[string]any{"status": "overdue"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.StatusPaid, response.Data.Status)
}

func (suite *TestSuiteStandard) TestObligationsUpdateFails() {
	tenancy := createTestTenancy(suite.T(), v1.TenancyEditable{})
	obligations := backfillTestTenancy(suite.T(), tenancy)
	require.NotEmpty(suite.T(), obligations)

	tests := []struct {
		name   string
		id     string
		body   any
		status int // expected response status
	}{
		{"Invalid type", obligations[0].ID.String(), `{"note": 2}`, http.StatusBadRequest},
		{"Broken JSON", obligations[0].ID.String(), `{ "note": 2" }`, http.StatusBadRequest},
		{"Invalid status", obligations[0].ID.String(), `{"status": "settled"}`, http.StatusBadRequest},
		{"Non-existing Obligation", uuid.New().String(), `{"note": "Does not matter"}`, http.StatusNotFound},
		{"Invalid UUID", "notaUUID", `{"note": "Does not matter"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/obligations/%s", tt.id), tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestObligationsMarkOverdue verifies the overdue sweep endpoint.
func (suite *TestSuiteStandard) TestObligationsMarkOverdue() {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tenancy := createTestTenancy(suite.T(), v1.TenancyEditable{StartDate: start})
	obligations := backfillTestTenancy(suite.T(), tenancy)
	require.NotEmpty(suite.T(), obligations)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/obligations/mark-overdue?month=2025-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ObligationSweepResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), int64(2), response.Data.Marked, "January and February are before March")
	assert.True(suite.T(), response.Data.AsOf.Equal(types.NewMonth(2025, time.March)))

	// Sweeping again is a no-op
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/obligations/mark-overdue?month=2025-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), int64(0), response.Data.Marked)
}

func (suite *TestSuiteStandard) TestObligationsMarkOverdueInvalidMonth() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/obligations/mark-overdue?month=notamonth", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ObligationSweepResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "the month must be specified in YYYY-MM format", *response.Error)
}
