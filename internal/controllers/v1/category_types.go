package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/httputil"
	"github.com/rentledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	PropertyID uuid.UUID       `json:"propertyId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the property
	Name       string          `json:"name" example:"Maintenance" default:""`                     // Name of the spending category
	Weight     decimal.Decimal `json:"weight" example:"42.5" default:"0"`                         // Percentage weight of the category, must not be negative
	Archived   bool            `json:"archived" example:"true" default:"false"`                   // Is the category archived?
}

func (editable CategoryEditable) model() models.SpendingCategory {
	return models.SpendingCategory{
		PropertyID: editable.PropertyID,
		Name:       editable.Name,
		Weight:     editable.Weight,
		Archived:   editable.Archived,
	}
}

type CategoryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/categories/052a59b4-98a9-437d-a286-0ffb1f61f70a"`                // The category itself
	Property string `json:"property" example:"https://example.com/api/v1/properties/3b1ea324-d438-4419-882a-2fc91d71772f"`            // The property the category belongs to
	Reports  string `json:"reports" example:"https://example.com/api/v1/reports?property=3b1ea324-d438-4419-882a-2fc91d71772f"`       // Monthly reports allocating to this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.SpendingCategory) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			PropertyID: model.PropertyID,
			Name:       model.Name,
			Weight:     model.Weight,
			Archived:   model.Archived,
		},
		Links: CategoryLinks{
			Self:     fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Property: fmt.Sprintf("%s/v1/properties/%s", url, model.PropertyID),
			Reports:  fmt.Sprintf("%s/v1/reports?property=%s", url, model.PropertyID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	PropertyID string `form:"property"`                   // By property ID
	Name       string `form:"name" filterField:"false"`   // By name
	Archived   bool   `form:"archived"`                   // Is the category archived?
	Search     string `form:"search" filterField:"false"` // By string in name
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() (models.SpendingCategory, error) {
	propertyID, err := httputil.UUIDFromString(f.PropertyID)
	if err != nil {
		return models.SpendingCategory{}, err
	}

	return models.SpendingCategory{
		PropertyID: propertyID,
		Archived:   f.Archived,
	}, nil
}
