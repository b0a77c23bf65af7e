package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/httputil"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ReportEditable is the request body for generating a report.
type ReportEditable struct {
	PropertyID uuid.UUID   `json:"propertyId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the property
	Month      types.Month `json:"month" example:"2025-03-01T00:00:00Z"`                      // The month to report on
	AuthorID   uuid.UUID   `json:"authorId" example:"d4b09219-6c16-4bd5-a33b-72478c09cf3e"`   // ID of the user generating the report
	Note       *string     `json:"note" example:"March close"`                                // Notes about the report. If set, replaces the existing note
}

// ReportReviseEditable is the request body for revising a report. Only
// the supplied fields are changed, the derived totals never are.
type ReportReviseEditable struct {
	Note      *string                 `json:"note" example:"Corrected after audit"` // Notes about the report
	Breakdown *models.AllocationLines `json:"breakdown"`                            // Replacement allocation breakdown
}

type ReportLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/reports/5b66ad07-9f39-4b0f-9fbc-24f64db2c430"`                           // The report itself
	Property    string `json:"property" example:"https://example.com/api/v1/properties/3b1ea324-d438-4419-882a-2fc91d71772f"`                    // The property reported on
	Obligations string `json:"obligations" example:"https://example.com/api/v1/obligations?property=3b1ea324-d438-4419-882a-2fc91d71772f"`       // The obligations the report derives from
}

type Report struct {
	models.DefaultModel
	PropertyID    uuid.UUID              `json:"propertyId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the property
	Month         types.Month            `json:"month" example:"2025-03-01T00:00:00Z"`                      // The month reported on
	TotalBudget   decimal.Decimal        `json:"totalBudget" example:"1700.00"`                             // Sum of paid obligations for the month
	PendingAmount decimal.Decimal        `json:"pendingAmount" example:"850.00"`                            // Sum of obligations not yet paid
	TotalTenants  int                    `json:"totalTenants" example:"3"`                                  // Number of tenants with an obligation in the month
	PaidTenants   int                    `json:"paidTenants" example:"2"`                                   // Number of tenants whose obligation is paid
	Breakdown     models.AllocationLines `json:"breakdown"`                                                 // Allocation of the collected budget to spending categories
	Note          string                 `json:"note" example:"March close"`                                // Notes about the report
	AuthorID      uuid.UUID              `json:"authorId" example:"d4b09219-6c16-4bd5-a33b-72478c09cf3e"`   // ID of the user who last generated the report
	Links         ReportLinks            `json:"links"`
}

func newReport(c *gin.Context, model models.MonthlyReport) Report {
	url := c.GetString(string(models.DBContextURL))

	return Report{
		DefaultModel:  model.DefaultModel,
		PropertyID:    model.PropertyID,
		Month:         model.Month,
		TotalBudget:   model.TotalBudget,
		PendingAmount: model.PendingAmount,
		TotalTenants:  model.TotalTenants,
		PaidTenants:   model.PaidTenants,
		Breakdown:     model.Breakdown,
		Note:          model.Note,
		AuthorID:      model.AuthorID,
		Links: ReportLinks{
			Self:        fmt.Sprintf("%s/v1/reports/%s", url, model.ID),
			Property:    fmt.Sprintf("%s/v1/properties/%s", url, model.PropertyID),
			Obligations: fmt.Sprintf("%s/v1/obligations?property=%s", url, model.PropertyID),
		},
	}
}

type ReportListResponse struct {
	Data       []Report    `json:"data"`                                                          // List of Reports
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ReportResponse struct {
	Data  *Report `json:"data"`                                                          // Data for the Report
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ReportQueryFilter struct {
	PropertyID string `form:"property"`                   // By property ID
	Year       int    `form:"year" filterField:"false"`   // By calendar year of the reported month
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first Report returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of Reports to return. Defaults to 50.
}

func (f ReportQueryFilter) model() (models.MonthlyReport, error) {
	propertyID, err := httputil.UUIDFromString(f.PropertyID)
	if err != nil {
		return models.MonthlyReport{}, err
	}

	return models.MonthlyReport{
		PropertyID: propertyID,
	}, nil
}
