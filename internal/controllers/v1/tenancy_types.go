package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/httputil"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
)

// TenancyEditable represents all user configurable parameters
type TenancyEditable struct {
	TenantID   uuid.UUID `json:"tenantId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`   // ID of the tenant
	PropertyID uuid.UUID `json:"propertyId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the property
	StartDate  time.Time `json:"startDate" example:"2025-01-15T00:00:00Z"`                  // Day the tenancy starts
	Note       string    `json:"note" example:"Moved in mid-month" default:""`              // Notes about the tenancy
}

func (editable TenancyEditable) model() models.Tenancy {
	return models.Tenancy{
		TenantID:   editable.TenantID,
		PropertyID: editable.PropertyID,
		StartDate:  editable.StartDate,
		Note:       editable.Note,
	}
}

type TenancyLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/tenancies/a4ee23b4-2549-4d9c-9eb1-b3a73b2acc0d"`                                                        // The tenancy itself
	Backfill    string `json:"backfill" example:"https://example.com/api/v1/tenancies/a4ee23b4-2549-4d9c-9eb1-b3a73b2acc0d/backfill"`                                           // Generate obligations through the current month
	Future      string `json:"future" example:"https://example.com/api/v1/tenancies/a4ee23b4-2549-4d9c-9eb1-b3a73b2acc0d/future"`                                               // Generate obligations ahead of the current month
	Obligations string `json:"obligations" example:"https://example.com/api/v1/obligations?tenant=af892e10-7e0a-4fb8-b1bc-4b6d88401ed9&property=3b1ea324-d438-4419-882a-2fc91d71772f"` // Payment obligations for this tenancy
}

type Tenancy struct {
	models.DefaultModel
	TenancyEditable
	Links TenancyLinks `json:"links"`
}

func newTenancy(c *gin.Context, model models.Tenancy) Tenancy {
	url := c.GetString(string(models.DBContextURL))

	return Tenancy{
		DefaultModel: model.DefaultModel,
		TenancyEditable: TenancyEditable{
			TenantID:   model.TenantID,
			PropertyID: model.PropertyID,
			StartDate:  model.StartDate,
			Note:       model.Note,
		},
		Links: TenancyLinks{
			Self:        fmt.Sprintf("%s/v1/tenancies/%s", url, model.ID),
			Backfill:    fmt.Sprintf("%s/v1/tenancies/%s/backfill", url, model.ID),
			Future:      fmt.Sprintf("%s/v1/tenancies/%s/future", url, model.ID),
			Obligations: fmt.Sprintf("%s/v1/obligations?tenant=%s&property=%s", url, model.TenantID, model.PropertyID),
		},
	}
}

type TenancyListResponse struct {
	Data       []Tenancy   `json:"data"`                                                          // List of Tenancies
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type TenancyCreateResponse struct {
	Data  []TenancyResponse `json:"data"`                                                          // List of the created Tenancies or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TenancyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TenancyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TenancyResponse struct {
	Data  *Tenancy `json:"data"`                                                          // Data for the Tenancy
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// TenancyGeneratedResponse is the response for obligation generation
// on a tenancy.
type TenancyGeneratedResponse struct {
	Data  *TenancyGenerated `json:"data"`                                                          // Result of the generation run
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TenancyGenerated struct {
	Created int         `json:"created" example:"4"`  // Number of obligations created in this run
	From    types.Month `json:"from" example:"2025-01-01T00:00:00Z"`  // First month of the generated range
	Through types.Month `json:"through" example:"2025-04-01T00:00:00Z"` // Last month of the generated range
}

// TenancyFutureEditable is the request body for forward generation.
type TenancyFutureEditable struct {
	MonthsAhead int `json:"monthsAhead" example:"6" minimum:"1" maximum:"24"` // How many months to generate, starting with the current one
}

type TenancyQueryFilter struct {
	TenantID   string `form:"tenant"`                     // By tenant ID
	PropertyID string `form:"property"`                   // By property ID
	Note       string `form:"note" filterField:"false"`   // By note
	Search     string `form:"search" filterField:"false"` // By string in note
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first Tenancy returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of Tenancies to return. Defaults to 50.
}

func (f TenancyQueryFilter) model() (models.Tenancy, error) {
	tenantID, err := httputil.UUIDFromString(f.TenantID)
	if err != nil {
		return models.Tenancy{}, err
	}

	propertyID, err := httputil.UUIDFromString(f.PropertyID)
	if err != nil {
		return models.Tenancy{}, err
	}

	return models.Tenancy{
		TenantID:   tenantID,
		PropertyID: propertyID,
	}, nil
}
