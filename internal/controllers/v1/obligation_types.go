package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/httputil"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ObligationEditable represents the user configurable parameters of a
// payment obligation. Obligations are created by the generators, so only
// the lifecycle fields can be written through the API. The amount is
// fixed at generation time.
type ObligationEditable struct {
	Status      models.ObligationStatus `json:"status" example:"paid" default:"pending"` // Lifecycle status, one of pending, paid, overdue
	PaymentDate *time.Time              `json:"paymentDate" example:"2025-03-04T00:00:00Z"` // Day the payment was received. Only used on a transition to paid, defaults to now
	Note        string                  `json:"note" example:"Paid in cash" default:""`  // Notes about the obligation
}

type ObligationLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/obligations/d1f7f2d1-bbc3-43ae-a7d2-8d4cdf8ddffe"`   // The obligation itself
	Tenant   string `json:"tenant" example:"https://example.com/api/v1/tenants/af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`     // The tenant owing the amount
	Property string `json:"property" example:"https://example.com/api/v1/properties/3b1ea324-d438-4419-882a-2fc91d71772f"` // The property the amount is owed for
}

type Obligation struct {
	models.DefaultModel
	TenantID   uuid.UUID       `json:"tenantId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`   // ID of the tenant
	PropertyID uuid.UUID       `json:"propertyId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the property
	Month      types.Month     `json:"month" example:"2025-03-01T00:00:00Z"`                      // The month the amount is owed for
	Amount     decimal.Decimal `json:"amount" example:"850.00"`                                   // The amount owed, in the property currency
	ObligationEditable
	Links ObligationLinks `json:"links"`
}

func newObligation(c *gin.Context, model models.PaymentObligation) Obligation {
	url := c.GetString(string(models.DBContextURL))

	return Obligation{
		DefaultModel: model.DefaultModel,
		TenantID:     model.TenantID,
		PropertyID:   model.PropertyID,
		Month:        model.Month,
		Amount:       model.Amount,
		ObligationEditable: ObligationEditable{
			Status:      model.Status,
			PaymentDate: model.PaymentDate,
			Note:        model.Note,
		},
		Links: ObligationLinks{
			Self:     fmt.Sprintf("%s/v1/obligations/%s", url, model.ID),
			Tenant:   fmt.Sprintf("%s/v1/tenants/%s", url, model.TenantID),
			Property: fmt.Sprintf("%s/v1/properties/%s", url, model.PropertyID),
		},
	}
}

type ObligationListResponse struct {
	Data       []Obligation `json:"data"`                                                          // List of Obligations
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type ObligationResponse struct {
	Data  *Obligation `json:"data"`                                                          // Data for the Obligation
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// ObligationSweepResponse is the response for the overdue sweep.
type ObligationSweepResponse struct {
	Data  *ObligationSweep `json:"data"`                                                          // Result of the sweep
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ObligationSweep struct {
	Marked int64       `json:"marked" example:"3"`                  // Number of obligations flipped to overdue
	AsOf   types.Month `json:"asOf" example:"2025-03-01T00:00:00Z"` // Pending obligations before this month were swept
}

type ObligationQueryFilter struct {
	TenantID   string `form:"tenant"`                     // By tenant ID
	PropertyID string `form:"property"`                   // By property ID
	Year       int    `form:"year" filterField:"false"`   // By calendar year of the month owed for
	Status     string `form:"status"`                     // By status
	Note       string `form:"note" filterField:"false"`   // By note
	Search     string `form:"search" filterField:"false"` // By string in note
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first Obligation returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of Obligations to return. Defaults to 50.
}

func (f ObligationQueryFilter) model() (models.PaymentObligation, error) {
	tenantID, err := httputil.UUIDFromString(f.TenantID)
	if err != nil {
		return models.PaymentObligation{}, err
	}

	propertyID, err := httputil.UUIDFromString(f.PropertyID)
	if err != nil {
		return models.PaymentObligation{}, err
	}

	status := models.ObligationStatus(f.Status)
	if f.Status != "" && !status.Valid() {
		return models.PaymentObligation{}, models.ErrObligationStatusInvalid
	}

	return models.PaymentObligation{
		TenantID:   tenantID,
		PropertyID: propertyID,
		Status:     status,
	}, nil
}
