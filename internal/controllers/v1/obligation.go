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

// RegisterObligationRoutes registers the routes for payment obligations
// with the RouterGroup that is passed.
//
// Obligations have no create endpoint, they come into existence through
// the generators on tenancies.
func RegisterObligationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsObligationList)
		r.GET("", GetObligations)
	}

	// Overdue sweep
	{
		r.OPTIONS("/mark-overdue", OptionsObligationSweep)
		r.POST("/mark-overdue", MarkObligationsOverdue)
	}

	// Obligation with ID
	{
		r.OPTIONS("/:id", OptionsObligationDetail)
		r.GET("/:id", GetObligation)
		r.PATCH("/:id", UpdateObligation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Obligations
// @Success		204
// @Router			/v1/obligations [options]
func OptionsObligationList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Obligations
// @Success		204
// @Router			/v1/obligations/mark-overdue [options]
func OptionsObligationSweep(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Obligations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/obligations/{id} [options]
func OptionsObligationDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var obligation models.PaymentObligation
	err = models.DB.First(&obligation, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatch(c)
}

// @Summary		Get obligations
// @Description	Returns a list of payment obligations
// @Tags			Obligations
// @Produce		json
// @Success		200	{object}	ObligationListResponse
// @Failure		400	{object}	ObligationListResponse
// @Failure		500	{object}	ObligationListResponse
// @Router			/v1/obligations [get]
// @Param			tenant		query	string	false	"Filter by tenant ID"
// @Param			property	query	string	false	"Filter by property ID"
// @Param			year		query	int		false	"Filter by calendar year of the month owed for"
// @Param			status		query	string	false	"Filter by status"
// @Param			note		query	string	false	"Filter by note"
// @Param			search		query	string	false	"Search for this text in note"
// @Param			offset		query	uint	false	"The offset of the first Obligation returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Obligations to return. Defaults to 50."
func GetObligations(c *gin.Context) {
	var filter ObligationQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObligationListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("month ASC, created_at ASC").
		Where(&filterModel, queryFields...)

	// The year filter covers all twelve months of that calendar year
	if slices.Contains(setFields, "Year") {
		start := types.NewMonth(filter.Year, time.January)
		q = q.Where("month >= ? AND month < ?", start, start.AddDate(1, 0))
	}

	q = stringFilters(models.DB, q, setFields, "", filter.Note, filter.Search, "note")

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Obligations and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var obligations []models.PaymentObligation
	err = q.Find(&obligations).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObligationListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ObligationListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Obligation, 0)
	for _, obligation := range obligations {
		data = append(data, newObligation(c, obligation))
	}

	c.JSON(http.StatusOK, ObligationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get obligation
// @Description	Returns a specific payment obligation
// @Tags			Obligations
// @Produce		json
// @Success		200	{object}	ObligationResponse
// @Failure		400	{object}	ObligationResponse
// @Failure		404	{object}	ObligationResponse
// @Failure		500	{object}	ObligationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/obligations/{id} [get]
func GetObligation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObligationResponse{
			Error: &s,
		})
		return
	}

	var obligation models.PaymentObligation
	err = models.DB.First(&obligation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObligationResponse{
			Error: &s,
		})
		return
	}

	data := newObligation(c, obligation)
	c.JSON(http.StatusOK, ObligationResponse{Data: &data})
}

// @Summary		Update obligation
// @Description	Updates the lifecycle state or note of an obligation. A status change that the lifecycle does not allow leaves the record unchanged. The amount cannot be changed.
// @Tags			Obligations
// @Accept			json
// @Produce		json
// @Success		200			{object}	ObligationResponse
// @Failure		400			{object}	ObligationResponse
// @Failure		404			{object}	ObligationResponse
// @Failure		500			{object}	ObligationResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			obligation	body		ObligationEditable	true	"Obligation"
// @Router			/v1/obligations/{id} [patch]
func UpdateObligation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObligationResponse{
			Error: &s,
		})
		return
	}

	var obligation models.PaymentObligation
	err = models.DB.First(&obligation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObligationResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ObligationEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObligationResponse{
			Error: &s,
		})
		return
	}

	var data ObligationEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObligationResponse{
			Error: &s,
		})
		return
	}

	var updateNote, updateStatus bool
	for _, field := range updateFields {
		switch field {
		case "Note":
			updateNote = true
		case "Status":
			updateStatus = true
		}
	}

	if updateNote {
		err = models.DB.Model(&obligation).Updates(map[string]any{"note": data.Note}).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ObligationResponse{
				Error: &s,
			})
			return
		}
	}

	if updateStatus {
		obligation, err = billing.SetObligationStatus(models.DB, uri.ID.UUID, data.Status, data.PaymentDate)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ObligationResponse{
				Error: &s,
			})
			return
		}
	} else {
		err = models.DB.First(&obligation, uri.ID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ObligationResponse{
				Error: &s,
			})
			return
		}
	}

	r := newObligation(c, obligation)
	c.JSON(http.StatusOK, ObligationResponse{Data: &r})
}

// @Summary		Mark obligations overdue
// @Description	Flips all pending obligations for months before the given month to overdue. Defaults to the current month, so everything older than the running month becomes overdue.
// @Tags			Obligations
// @Produce		json
// @Success		200		{object}	ObligationSweepResponse
// @Failure		400		{object}	ObligationSweepResponse
// @Failure		500		{object}	ObligationSweepResponse
// @Param			month	query		string	false	"Sweep pending obligations before this month (YYYY-MM). Defaults to the current month."
// @Router			/v1/obligations/mark-overdue [post]
func MarkObligationsOverdue(c *gin.Context) {
	var query QueryMonth
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := httputil.ErrInvalidMonth.Error()
		c.JSON(http.StatusBadRequest, ObligationSweepResponse{
			Error: &s,
		})
		return
	}

	asOf := types.MonthOf(time.Now())
	if !query.Month.IsZero() {
		asOf = types.MonthOf(query.Month)
	}

	marked, err := billing.MarkOverdue(models.DB, asOf)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObligationSweepResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ObligationSweepResponse{
		Data: &ObligationSweep{
			Marked: marked,
			AsOf:   asOf,
		},
	})
}
