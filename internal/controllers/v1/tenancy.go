package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentledger/backend/internal/billing"
	"github.com/rentledger/backend/internal/httputil"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterTenancyRoutes registers the routes for tenancies with
// the RouterGroup that is passed.
func RegisterTenancyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTenancyList)
		r.GET("", GetTenancies)
		r.POST("", CreateTenancies)
	}

	// Tenancy with ID
	{
		r.OPTIONS("/:id", OptionsTenancyDetail)
		r.GET("/:id", GetTenancy)
		r.DELETE("/:id", DeleteTenancy)
	}

	// Obligation generation
	{
		r.OPTIONS("/:id/backfill", OptionsTenancyBackfill)
		r.POST("/:id/backfill", BackfillTenancy)
		r.OPTIONS("/:id/future", OptionsTenancyFuture)
		r.POST("/:id/future", FutureTenancy)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tenancies
// @Success		204
// @Router			/v1/tenancies [options]
func OptionsTenancyList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tenancies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tenancies/{id} [options]
func OptionsTenancyDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var tenancy models.Tenancy
	err = models.DB.First(&tenancy, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tenancies
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tenancies/{id}/backfill [options]
func OptionsTenancyBackfill(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tenancies
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tenancies/{id}/future [options]
func OptionsTenancyFuture(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create tenancies
// @Description	Creates new tenancies
// @Tags			Tenancies
// @Produce		json
// @Success		201			{object}	TenancyCreateResponse
// @Failure		400			{object}	TenancyCreateResponse
// @Failure		404			{object}	TenancyCreateResponse
// @Failure		500			{object}	TenancyCreateResponse
// @Param			tenancies	body		[]TenancyEditable	true	"Tenancies"
// @Router			/v1/tenancies [post]
func CreateTenancies(c *gin.Context) {
	var editables []TenancyEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TenancyCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TenancyCreateResponse{}

	for _, editable := range editables {
		tenancy := editable.model()

		err = models.DB.Create(&tenancy).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTenancy(c, tenancy)
		r.Data = append(r.Data, TenancyResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get tenancies
// @Description	Returns a list of tenancies
// @Tags			Tenancies
// @Produce		json
// @Success		200	{object}	TenancyListResponse
// @Failure		400	{object}	TenancyListResponse
// @Failure		500	{object}	TenancyListResponse
// @Router			/v1/tenancies [get]
// @Param			tenant		query	string	false	"Filter by tenant ID"
// @Param			property	query	string	false	"Filter by property ID"
// @Param			note		query	string	false	"Filter by note"
// @Param			search		query	string	false	"Search for this text in note"
// @Param			offset		query	uint	false	"The offset of the first Tenancy returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Tenancies to return. Defaults to 50."
func GetTenancies(c *gin.Context) {
	var filter TenancyQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TenancyListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("start_date ASC, created_at ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, "", filter.Note, filter.Search, "note")

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Tenancies and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var tenancies []models.Tenancy
	err = q.Find(&tenancies).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TenancyListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TenancyListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Tenancy, 0)
	for _, tenancy := range tenancies {
		data = append(data, newTenancy(c, tenancy))
	}

	c.JSON(http.StatusOK, TenancyListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get tenancy
// @Description	Returns a specific tenancy
// @Tags			Tenancies
// @Produce		json
// @Success		200	{object}	TenancyResponse
// @Failure		400	{object}	TenancyResponse
// @Failure		404	{object}	TenancyResponse
// @Failure		500	{object}	TenancyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tenancies/{id} [get]
func GetTenancy(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TenancyResponse{
			Error: &s,
		})
		return
	}

	var tenancy models.Tenancy
	err = models.DB.First(&tenancy, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TenancyResponse{
			Error: &s,
		})
		return
	}

	data := newTenancy(c, tenancy)
	c.JSON(http.StatusOK, TenancyResponse{Data: &data})
}

// @Summary		Delete tenancy
// @Description	Deletes a tenancy. Obligations that were already generated are kept.
// @Tags			Tenancies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tenancies/{id} [delete]
func DeleteTenancy(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var tenancy models.Tenancy
	err = models.DB.First(&tenancy, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&tenancy).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Backfill obligations
// @Description	Generates the payment obligations for this tenancy from its start through the current month. Months that already have an obligation are skipped, so the operation can be repeated safely.
// @Tags			Tenancies
// @Produce		json
// @Success		201	{object}	TenancyGeneratedResponse
// @Failure		400	{object}	TenancyGeneratedResponse
// @Failure		404	{object}	TenancyGeneratedResponse
// @Failure		500	{object}	TenancyGeneratedResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tenancies/{id}/backfill [post]
func BackfillTenancy(c *gin.Context) {
	tenancy, tenant, property, err := tenancyParties(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TenancyGeneratedResponse{
			Error: &s,
		})
		return
	}

	from := billing.BackfillStart(tenancy, property)
	through := types.MonthOf(time.Now())

	created, err := billing.EnsureObligations(models.DB, tenant, property, from, through)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TenancyGeneratedResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, TenancyGeneratedResponse{
		Data: &TenancyGenerated{
			Created: created,
			From:    types.MonthOf(from),
			Through: through,
		},
	})
}

// @Summary		Generate future obligations
// @Description	Generates payment obligations for this tenancy starting with the current month. Months that already have an obligation are skipped.
// @Tags			Tenancies
// @Accept			json
// @Produce		json
// @Success		201		{object}	TenancyGeneratedResponse
// @Failure		400		{object}	TenancyGeneratedResponse
// @Failure		404		{object}	TenancyGeneratedResponse
// @Failure		500		{object}	TenancyGeneratedResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			request	body		TenancyFutureEditable	true	"Generation window"
// @Router			/v1/tenancies/{id}/future [post]
func FutureTenancy(c *gin.Context) {
	_, tenant, property, err := tenancyParties(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TenancyGeneratedResponse{
			Error: &s,
		})
		return
	}

	var editable TenancyFutureEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TenancyGeneratedResponse{
			Error: &s,
		})
		return
	}

	created, err := billing.GenerateFutureObligations(models.DB, tenant, property, editable.MonthsAhead)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TenancyGeneratedResponse{
			Error: &s,
		})
		return
	}

	from := types.MonthOf(time.Now())
	c.JSON(http.StatusCreated, TenancyGeneratedResponse{
		Data: &TenancyGenerated{
			Created: created,
			From:    from,
			Through: from.AddDate(0, editable.MonthsAhead-1),
		},
	})
}

// tenancyParties loads the tenancy from the request URI together with
// its tenant and property.
func tenancyParties(c *gin.Context) (models.Tenancy, models.Tenant, models.Property, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Tenancy{}, models.Tenant{}, models.Property{}, err
	}

	var tenancy models.Tenancy
	err = models.DB.First(&tenancy, uri.ID).Error
	if err != nil {
		return models.Tenancy{}, models.Tenant{}, models.Property{}, err
	}

	var tenant models.Tenant
	err = models.DB.First(&tenant, tenancy.TenantID).Error
	if err != nil {
		return models.Tenancy{}, models.Tenant{}, models.Property{}, err
	}

	var property models.Property
	err = models.DB.First(&property, tenancy.PropertyID).Error
	if err != nil {
		return models.Tenancy{}, models.Tenant{}, models.Property{}, err
	}

	return tenancy, tenant, property, nil
}
