package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentledger/backend/internal/httputil"
	"github.com/rentledger/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterPropertyRoutes registers the routes for properties with
// the RouterGroup that is passed.
func RegisterPropertyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPropertyList)
		r.GET("", GetProperties)
		r.POST("", CreateProperties)
	}

	// Property with ID
	{
		r.OPTIONS("/:id", OptionsPropertyDetail)
		r.GET("/:id", GetProperty)
		r.PATCH("/:id", UpdateProperty)
		r.DELETE("/:id", DeleteProperty)
	}

	// Spending categories of the property
	{
		r.OPTIONS("/:id/categories", OptionsPropertyCategories)
		r.GET("/:id/categories", GetPropertyCategories)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Properties
// @Success		204
// @Router			/v1/properties [options]
func OptionsPropertyList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Properties
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/properties/{id} [options]
func OptionsPropertyDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Property{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Properties
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/properties/{id}/categories [options]
func OptionsPropertyCategories(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Create properties
// @Description	Creates new properties
// @Tags			Properties
// @Produce		json
// @Success		201			{object}	PropertyCreateResponse
// @Failure		400			{object}	PropertyCreateResponse
// @Failure		500			{object}	PropertyCreateResponse
// @Param			properties	body		[]PropertyEditable	true	"Properties"
// @Router			/v1/properties [post]
func CreateProperties(c *gin.Context) {
	var editables []PropertyEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PropertyCreateResponse{}

	for _, editable := range editables {
		property := editable.model()

		err = models.DB.Create(&property).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newProperty(c, property)
		r.Data = append(r.Data, PropertyResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get properties
// @Description	Returns a list of properties
// @Tags			Properties
// @Produce		json
// @Success		200	{object}	PropertyListResponse
// @Failure		400	{object}	PropertyListResponse
// @Failure		500	{object}	PropertyListResponse
// @Router			/v1/properties [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			currency	query	string	false	"Filter by currency"
// @Param			archived	query	bool	false	"Is the property archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Property returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Properties to return. Defaults to 50."
func GetProperties(c *gin.Context) {
	var filter PropertyQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search, "name", "note")

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Properties and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var properties []models.Property
	err = q.Find(&properties).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PropertyListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Property, 0)
	for _, property := range properties {
		data = append(data, newProperty(c, property))
	}

	c.JSON(http.StatusOK, PropertyListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get property
// @Description	Returns a specific property
// @Tags			Properties
// @Produce		json
// @Success		200	{object}	PropertyResponse
// @Failure		400	{object}	PropertyResponse
// @Failure		404	{object}	PropertyResponse
// @Failure		500	{object}	PropertyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/properties/{id} [get]
func GetProperty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	var property models.Property
	err = models.DB.First(&property, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	data := newProperty(c, property)
	c.JSON(http.StatusOK, PropertyResponse{Data: &data})
}

// @Summary		Update property
// @Description	Update an existing property. Only values to be updated need to be specified.
// @Tags			Properties
// @Accept			json
// @Produce		json
// @Success		200			{object}	PropertyResponse
// @Failure		400			{object}	PropertyResponse
// @Failure		404			{object}	PropertyResponse
// @Failure		500			{object}	PropertyResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			property	body		PropertyEditable	true	"Property"
// @Router			/v1/properties/{id} [patch]
func UpdateProperty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	var property models.Property
	err = models.DB.First(&property, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PropertyEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	var data PropertyEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	// Update through the patched model itself so that BeforeSave runs
	// against the new data
	patched := data.model()
	patched.DefaultModel = property.DefaultModel

	err = models.DB.Model(&patched).Select("", updateFields...).Updates(&patched).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.First(&property, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PropertyResponse{
			Error: &s,
		})
		return
	}

	r := newProperty(c, property)
	c.JSON(http.StatusOK, PropertyResponse{Data: &r})
}

// @Summary		Get property categories
// @Description	Returns the active spending categories of a property, ordered by name
// @Tags			Properties
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		400	{object}	CategoryListResponse
// @Failure		404	{object}	CategoryListResponse
// @Failure		500	{object}	CategoryListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/properties/{id}/categories [get]
func GetPropertyCategories(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &s,
		})
		return
	}

	var property models.Property
	err = models.DB.First(&property, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &s,
		})
		return
	}

	categories, err := property.SpendingCategories(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Category, 0)
	for _, category := range categories {
		data = append(data, newCategory(c, category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(data)),
			Offset: 0,
			Limit:  len(data),
		},
	})
}

// @Summary		Delete property
// @Description	Deletes a property
// @Tags			Properties
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/properties/{id} [delete]
func DeleteProperty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var property models.Property
	err = models.DB.First(&property, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&property).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
