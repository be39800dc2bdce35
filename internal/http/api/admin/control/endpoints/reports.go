package endpoints

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harborlight/carecal/internal/db"
	"github.com/harborlight/carecal/internal/http/api"
	"github.com/harborlight/carecal/internal/http/api/admin/control/packets"
	"github.com/harborlight/carecal/internal/model"
	"github.com/harborlight/carecal/internal/report"
)

type ReportController struct {
	store db.Store
}

func ReportModule(store db.Store) api.Module {
	ctl := &ReportController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/reports/hours", ctl.hoursReport)
		c.RAW_GET("/reports/hours.csv", ctl.hoursReportCSV)
		c.GET("/reports/payroll", ctl.payrollReport)
		c.GET("/statistics", ctl.statistics)
		c.POST("/pay_adjustments", ctl.createAdjustment)
	})
}

func (r *ReportController) reportWindow(ctx *gin.Context) (time.Time, time.Time, *api.APIError) {
	var zero time.Time
	var query packets.ReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return zero, zero, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var start, end *time.Time
	if query.Start != nil {
		parsed, err := time.Parse(dateLayout, *query.Start)
		if err != nil {
			return zero, zero, &api.APIError{Code: http.StatusBadRequest, Message: "start must be YYYY-MM-DD"}
		}
		start = &parsed
	}
	if query.End != nil {
		parsed, err := time.Parse(dateLayout, *query.End)
		if err != nil {
			return zero, zero, &api.APIError{Code: http.StatusBadRequest, Message: "end must be YYYY-MM-DD"}
		}
		end = &parsed
	}

	from, to := report.Window(start, end, time.Now())
	return from, to, nil
}

func (r *ReportController) hoursReport(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	from, to, apiErr := r.reportWindow(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	shifts, err := r.store.ListShiftsBetween(from, to)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load shifts"}
	}

	return gin.H{
		"start": from.Format(dateLayout),
		"end":   to.Format(dateLayout),
		"hours": report.HoursByEmployee(shifts),
	}, nil
}

// GET /reports/hours.csv streams the same report as a download.
func (r *ReportController) hoursReportCSV(ctx *gin.Context) {
	from, to, apiErr := r.reportWindow(ctx)
	if apiErr != nil {
		ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}

	shifts, err := r.store.ListShiftsBetween(from, to)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load shifts"})
		return
	}

	filename := fmt.Sprintf("hours_%s_%s.csv", from.Format(dateLayout), to.Format(dateLayout))
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := report.WriteHoursCSV(ctx.Writer, report.HoursByEmployee(shifts)); err != nil {
		ctx.Status(http.StatusInternalServerError)
	}
}

func (r *ReportController) payrollReport(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	from, to, apiErr := r.reportWindow(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	employees, err := r.store.ListEmployees()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load employees"}
	}
	shifts, err := r.store.ListShiftsBetween(from, to)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load shifts"}
	}
	adjustments, err := r.store.ListAdjustmentsBetween(from, to)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load adjustments"}
	}

	return gin.H{
		"start":   from.Format(dateLayout),
		"end":     to.Format(dateLayout),
		"payroll": report.Payroll(employees, shifts, adjustments),
	}, nil
}

func (r *ReportController) statistics(_ *gin.Context, _ *model.User) (any, *api.APIError) {
	stats, err := r.store.GetStatistics()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load statistics"}
	}
	return stats, nil
}

func (r *ReportController) createAdjustment(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var request packets.CreateAdjustmentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	day, err := time.Parse(dateLayout, request.Date)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD"}
	}

	exists, err := r.store.EmployeeExists(request.EmployeeID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check employee"}
	}
	if !exists {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "employee not found"}
	}

	created, err := r.store.InsertAdjustment(request.EmployeeID, day, request.Amount, request.Note)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not record adjustment"}
	}

	return created, nil
}
