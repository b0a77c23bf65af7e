package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "github.com/rentledger/backend/internal/controllers/v1"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestTenantsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestTenantsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestTenant(t, v1.TenantEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/tenants", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.TenantListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
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

// TestTenantsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestTenantsOptions() {
	tests := []struct {
		name   string
		id     string // path at the Tenants endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Tenant with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Tenant exists", createTestTenant(suite.T(), v1.TenantEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/tenants", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTenantsCreate() {
	tenant := createTestTenant(suite.T(), v1.TenantEditable{
		Name:        "Ada Brook",
		MonthlyRate: decimal.NewFromFloat(850),
	})

	assert.Equal(suite.T(), "Ada Brook", tenant.Data.Name)
	assert.True(suite.T(), tenant.Data.MonthlyRate.Equal(decimal.NewFromFloat(850)))
	assert.Contains(suite.T(), tenant.Data.Links.Obligations, fmt.Sprintf("tenant=%s", tenant.Data.ID))
}

func (suite *TestSuiteStandard) TestTenantsCreateFails() {
	tests := []struct {
		name     string
		body     any
		status   int                                           // expected HTTP status
		testFunc func(t *testing.T, r v1.TenantCreateResponse) // tests to perform against the response
	}{
		{
			"Broken Body", `[{ "name": 2 }]`, http.StatusBadRequest,
			func(t *testing.T, r v1.TenantCreateResponse) {
				assert.Equal(t, "json: cannot unmarshal number into Go struct field TenantEditable.name of type string", *r.Error)
			},
		},
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, r v1.TenantCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *r.Error)
			},
		},
		{
			"Negative rate",
			`[{ "name": "Ada Brook", "monthlyRate": "-1" }]`,
			http.StatusBadRequest,
			func(t *testing.T, r v1.TenantCreateResponse) {
				assert.Equal(t, models.ErrTenantRateNegative.Error(), *r.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/tenants", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.TenantCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTenantsGetFilter() {
	_ = createTestTenant(suite.T(), v1.TenantEditable{
		Name:     "Ada Brook",
		Note:     "Pays by standing order",
		Archived: true,
	})

	_ = createTestTenant(suite.T(), v1.TenantEditable{
		Name: "Ben Okafor",
		Note: "Standing order from NL account",
	})

	_ = createTestTenant(suite.T(), v1.TenantEditable{
		Name: "Carla Núñez",
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Fuzzy name", "name=brook", 1},
		{"Fuzzy note", "note=standing", 2},
		{"Search", "search=ORDER", 2},
		{"Archived", "archived=true", 1},
		{"Not archived", "archived=false", 2},
		{"Offset 2", "offset=2", 1},
		{"Limit 1", "limit=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.TenantListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/tenants?%s", tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.len, len(response.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

// Verify that updating tenants works as desired
func (suite *TestSuiteStandard) TestTenantsUpdate() {
	tenant := createTestTenant(suite.T(), v1.TenantEditable{Name: "Before the update"})

	tests := []struct {
		name     string                                   // name of the test
		tenant   map[string]any                           // the updates to perform. This is not a struct because that would set all fields on the request
		testFunc func(t *testing.T, tr v1.TenantResponse) // tests to perform against the updated tenant resource
	}{
		{
			"Name, Note",
			map[string]any{
				"name": "After the update",
				"note": "Just moved in",
			},
			func(t *testing.T, tr v1.TenantResponse) {
				assert.Equal(t, "After the update", tr.Data.Name)
				assert.Equal(t, "Just moved in", tr.Data.Note)
			},
		},
		{
			"Monthly rate",
			map[string]any{
				"monthlyRate": "920.50",
			},
			func(t *testing.T, tr v1.TenantResponse) {
				assert.True(t, tr.Data.MonthlyRate.Equal(decimal.NewFromFloat(920.50)))
			},
		},
		{
			"Archived",
			map[string]any{
				"archived": true,
			},
			func(t *testing.T, tr v1.TenantResponse) {
				assert.True(t, tr.Data.Archived)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, tenant.Data.Links.Self, tt.tenant)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TenantResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTenantsUpdateFails() {
	tests := []struct {
		name   string
		id     string
		body   any
		status int // expected response status
	}{
		{"Invalid type", "", `{"name": 2}`, http.StatusBadRequest},
		{"Broken JSON", "", `{ "name": 2" }`, http.StatusBadRequest},
		{"Non-existing Tenant", uuid.New().String(), `{"name": "Does not matter"}`, http.StatusNotFound},
		{"Negative rate", "", `{"monthlyRate": "-20"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				tenant := createTestTenant(suite.T(), v1.TenantEditable{})
				tt.id = tenant.Data.ID.String()
			}

			recorder = test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/tenants/%s", tt.id), tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestTenantsDelete verifies all cases for Tenant deletions.
func (suite *TestSuiteStandard) TestTenantsDelete() {
	tests := []struct {
		name   string
		id     string
		status int // expected response status
	}{
		{"Success", "", http.StatusNoContent},
		{"Non-existing Tenant", uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				tenant := createTestTenant(t, v1.TenantEditable{})
				tt.id = tenant.Data.ID.String()
			}

			recorder = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/tenants/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}
