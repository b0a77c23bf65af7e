package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rentledger/backend/internal/models"
)

// PropertyEditable represents all user configurable parameters
type PropertyEditable struct {
	Name     string `json:"name" example:"Sonnenallee 5" default:""`                      // Name of the property
	Address  string `json:"address" example:"Sonnenallee 5, 12047 Berlin" default:""`     // Postal address
	Note     string `json:"note" example:"Two staircases, shared garden" default:""`      // Notes about the property
	Currency string `json:"currency" example:"EUR" default:"EUR"`                         // ISO 4217 currency for all amounts on this property
	Archived bool   `json:"archived" example:"true" default:"false"`                      // Is the property archived?
}

func (editable PropertyEditable) model() models.Property {
	return models.Property{
		Name:     editable.Name,
		Address:  editable.Address,
		Note:     editable.Note,
		Currency: editable.Currency,
		Archived: editable.Archived,
	}
}

type PropertyLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/properties/3b1ea324-d438-4419-882a-2fc91d71772f"`               // The property itself
	Categories  string `json:"categories" example:"https://example.com/api/v1/categories?property=3b1ea324-d438-4419-882a-2fc91d71772f"` // Spending categories for this property
	Obligations string `json:"obligations" example:"https://example.com/api/v1/obligations?property=3b1ea324-d438-4419-882a-2fc91d71772f"` // Payment obligations for this property
	Reports     string `json:"reports" example:"https://example.com/api/v1/reports?property=3b1ea324-d438-4419-882a-2fc91d71772f"`       // Monthly reports for this property
}

type Property struct {
	models.DefaultModel
	PropertyEditable
	Links PropertyLinks `json:"links"`
}

func newProperty(c *gin.Context, model models.Property) Property {
	url := c.GetString(string(models.DBContextURL))

	return Property{
		DefaultModel: model.DefaultModel,
		PropertyEditable: PropertyEditable{
			Name:     model.Name,
			Address:  model.Address,
			Note:     model.Note,
			Currency: model.Currency,
			Archived: model.Archived,
		},
		Links: PropertyLinks{
			Self:        fmt.Sprintf("%s/v1/properties/%s", url, model.ID),
			Categories:  fmt.Sprintf("%s/v1/categories?property=%s", url, model.ID),
			Obligations: fmt.Sprintf("%s/v1/obligations?property=%s", url, model.ID),
			Reports:     fmt.Sprintf("%s/v1/reports?property=%s", url, model.ID),
		},
	}
}

type PropertyListResponse struct {
	Data       []Property  `json:"data"`                                                          // List of Properties
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PropertyCreateResponse struct {
	Data  []PropertyResponse `json:"data"`                                                          // List of the created Properties or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PropertyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PropertyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PropertyResponse struct {
	Data  *Property `json:"data"`                                                          // Data for the Property
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PropertyQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Currency string `form:"currency"`                   // By currency
	Archived bool   `form:"archived"`                   // Is the property archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Property returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Properties to return. Defaults to 50.
}

func (f PropertyQueryFilter) model() (models.Property, error) {
	return models.Property{
		Currency: f.Currency,
		Archived: f.Archived,
	}, nil
}

