package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rentledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// TenantEditable represents all user configurable parameters
type TenantEditable struct {
	Name        string          `json:"name" example:"Ada Brook" default:""`                    // Name of the tenant
	Note        string          `json:"note" example:"Prefers contact by email" default:""`     // Notes about the tenant
	MonthlyRate decimal.Decimal `json:"monthlyRate" example:"850.00" default:"0"`               // Monthly amount due, in the property currency
	Archived    bool            `json:"archived" example:"true" default:"false"`                // Is the tenant archived?
}

func (editable TenantEditable) model() models.Tenant {
	return models.Tenant{
		Name:        editable.Name,
		Note:        editable.Note,
		MonthlyRate: editable.MonthlyRate,
		Archived:    editable.Archived,
	}
}

type TenantLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/tenants/af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`                 // The tenant itself
	Tenancies   string `json:"tenancies" example:"https://example.com/api/v1/tenancies?tenant=af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`   // Tenancies for this tenant
	Obligations string `json:"obligations" example:"https://example.com/api/v1/obligations?tenant=af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"` // Payment obligations for this tenant
}

type Tenant struct {
	models.DefaultModel
	TenantEditable
	Links TenantLinks `json:"links"`
}

func newTenant(c *gin.Context, model models.Tenant) Tenant {
	url := c.GetString(string(models.DBContextURL))

	return Tenant{
		DefaultModel: model.DefaultModel,
		TenantEditable: TenantEditable{
			Name:        model.Name,
			Note:        model.Note,
			MonthlyRate: model.MonthlyRate,
			Archived:    model.Archived,
		},
		Links: TenantLinks{
			Self:        fmt.Sprintf("%s/v1/tenants/%s", url, model.ID),
			Tenancies:   fmt.Sprintf("%s/v1/tenancies?tenant=%s", url, model.ID),
			Obligations: fmt.Sprintf("%s/v1/obligations?tenant=%s", url, model.ID),
		},
	}
}

type TenantListResponse struct {
	Data       []Tenant    `json:"data"`                                                          // List of Tenants
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type TenantCreateResponse struct {
	Data  []TenantResponse `json:"data"`                                                          // List of the created Tenants or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TenantCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TenantResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TenantResponse struct {
	Data  *Tenant `json:"data"`                                                          // Data for the Tenant
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TenantQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Archived bool   `form:"archived"`                   // Is the tenant archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Tenant returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Tenants to return. Defaults to 50.
}

func (f TenantQueryFilter) model() (models.Tenant, error) {
	return models.Tenant{
		Archived: f.Archived,
	}, nil
}
