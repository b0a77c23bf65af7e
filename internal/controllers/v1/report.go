package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/billing"
	"github.com/rentledger/backend/internal/httputil"
	"github.com/rentledger/backend/internal/models"
	"github.com/rentledger/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterReportRoutes registers the routes for monthly reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsReportList)
		r.GET("", GetReports)
		r.POST("", CreateReport)
	}

	// Report with ID
	{
		r.OPTIONS("/:id", OptionsReportDetail)
		r.GET("/:id", GetReport)
		r.PATCH("/:id", UpdateReport)
		r.DELETE("/:id", DeleteReport)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports [options]
func OptionsReportList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reports/{id} [options]
func OptionsReportDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.MonthlyReport{})
}

// @Summary		Generate report
// @Description	Generates the monthly report for a property from its payment obligations. If the report already exists, its derived values are recomputed and overwritten; the note is only replaced when one is supplied.
// @Tags			Reports
// @Accept			json
// @Produce		json
// @Success		201		{object}	ReportResponse
// @Failure		400		{object}	ReportResponse
// @Failure		404		{object}	ReportResponse
// @Failure		500		{object}	ReportResponse
// @Param			report	body		ReportEditable	true	"Report"
// @Router			/v1/reports [post]
func CreateReport(c *gin.Context) {
	var editable ReportEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	if editable.PropertyID == uuid.Nil {
		s := errPropertyNotSet.Error()
		c.JSON(http.StatusBadRequest, ReportResponse{
			Error: &s,
		})
		return
	}

	if editable.Month.IsZero() {
		s := errMonthNotSet.Error()
		c.JSON(http.StatusBadRequest, ReportResponse{
			Error: &s,
		})
		return
	}

	report, err := billing.GenerateReport(models.DB, editable.PropertyID, editable.Month, editable.AuthorID, editable.Note)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	data := newReport(c, report)
	c.JSON(http.StatusCreated, ReportResponse{Data: &data})
}

// @Summary		Get reports
// @Description	Returns a list of monthly reports
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportListResponse
// @Failure		400	{object}	ReportListResponse
// @Failure		500	{object}	ReportListResponse
// @Router			/v1/reports [get]
// @Param			property	query	string	false	"Filter by property ID"
// @Param			year		query	int		false	"Filter by calendar year of the reported month"
// @Param			offset		query	uint	false	"The offset of the first Report returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Reports to return. Defaults to 50."
func GetReports(c *gin.Context) {
	var filter ReportQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("month DESC").
		Where(&filterModel, queryFields...)

	// The year filter covers all twelve months of that calendar year
	if slices.Contains(setFields, "Year") {
		start := types.NewMonth(filter.Year, time.January)
		q = q.Where("month >= ? AND month < ?", start, start.AddDate(1, 0))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Reports and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var reports []models.MonthlyReport
	err = q.Find(&reports).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Report, 0)
	for _, report := range reports {
		data = append(data, newReport(c, report))
	}

	c.JSON(http.StatusOK, ReportListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get report
// @Description	Returns a specific monthly report
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportResponse
// @Failure		400	{object}	ReportResponse
// @Failure		404	{object}	ReportResponse
// @Failure		500	{object}	ReportResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reports/{id} [get]
func GetReport(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	var report models.MonthlyReport
	err = models.DB.First(&report, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	data := newReport(c, report)
	c.JSON(http.StatusOK, ReportResponse{Data: &data})
}

// @Summary		Revise report
// @Description	Revises the note or the allocation breakdown of a report. Only the supplied fields are changed, the derived totals never are.
// @Tags			Reports
// @Accept			json
// @Produce		json
// @Success		200		{object}	ReportResponse
// @Failure		400		{object}	ReportResponse
// @Failure		404		{object}	ReportResponse
// @Failure		500		{object}	ReportResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			report	body		ReportReviseEditable	true	"Revision"
// @Router			/v1/reports/{id} [patch]
func UpdateReport(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	var editable ReportReviseEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	report, err := billing.ReviseReport(models.DB, uri.ID.UUID, editable.Note, editable.Breakdown)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	data := newReport(c, report)
	c.JSON(http.StatusOK, ReportResponse{Data: &data})
}

// @Summary		Delete report
// @Description	Deletes a monthly report. The payment obligations it was derived from are kept, so the report can be generated again.
// @Tags			Reports
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reports/{id} [delete]
func DeleteReport(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = billing.DeleteReport(models.DB, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
