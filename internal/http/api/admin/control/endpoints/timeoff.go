package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harborlight/carecal/internal/db"
	"github.com/harborlight/carecal/internal/http/api"
	"github.com/harborlight/carecal/internal/http/api/admin/control/packets"
	"github.com/harborlight/carecal/internal/model"
)

type TimeOffController struct {
	store db.Store
}

func TimeOffModule(store db.Store) api.Module {
	ctl := &TimeOffController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/time_off", ctl.listTimeOff)
		c.POST("/time_off", ctl.createTimeOff)
		c.PUT("/time_off/:id", ctl.updateTimeOff)
		c.DELETE("/time_off/:id", ctl.deleteTimeOff)
	})
}

// Entries overlapping the requested window; defaults to the current
// month when no bounds are given.
func (t *TimeOffController) listTimeOff(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var query packets.ReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	if query.Start != nil {
		parsed, err := time.Parse(dateLayout, *query.Start)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "start must be YYYY-MM-DD"}
		}
		start = parsed
	}
	if query.End != nil {
		parsed, err := time.Parse(dateLayout, *query.End)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "end must be YYYY-MM-DD"}
		}
		end = parsed
	}

	list, err := t.store.ListTimeOffOverlapping(start, end)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list time off"}
	}

	response := make([]packets.TimeOffResponse, 0, len(list))
	for _, it := range list {
		response = append(response, timeOffResponse(it))
	}
	return response, nil
}

func timeOffResponse(t model.TimeOff) packets.TimeOffResponse {
	return packets.TimeOffResponse{
		ID:         t.ID,
		EmployeeID: t.EmployeeID,
		StartDate:  t.StartDate.Format(dateLayout),
		EndDate:    t.EndDate.Format(dateLayout),
		Reason:     t.Reason,
	}
}

func (t *TimeOffController) createTimeOff(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var request packets.TimeOffRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	start, end, apiErr := t.validateWindow(request)
	if apiErr != nil {
		return nil, apiErr
	}

	created, err := t.store.InsertTimeOff(request.EmployeeID, start, end, request.Reason)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not record time off"}
	}

	return timeOffResponse(created), nil
}

func (t *TimeOffController) updateTimeOff(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid time off id"}
	}

	existing, err := t.store.GetTimeOffByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load time off"}
	}
	if existing == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "time off entry not found"}
	}

	var request packets.TimeOffRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	start, end, apiErr := t.validateWindow(request)
	if apiErr != nil {
		return nil, apiErr
	}

	if _, err := t.store.UpdateTimeOff(id, request.EmployeeID, start, end, request.Reason); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update time off"}
	}

	return gin.H{"message": "updated"}, nil
}

func (t *TimeOffController) deleteTimeOff(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid time off id"}
	}

	deleted, err := t.store.DeleteTimeOff(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete time off"}
	}
	if !deleted {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "time off entry not found"}
	}

	return gin.H{"message": "deleted"}, nil
}

func (t *TimeOffController) validateWindow(request packets.TimeOffRequest) (time.Time, time.Time, *api.APIError) {
	var zero time.Time

	start, err := time.Parse(dateLayout, request.StartDate)
	if err != nil {
		return zero, zero, &api.APIError{Code: http.StatusBadRequest, Message: "start_date must be YYYY-MM-DD"}
	}
	end, err := time.Parse(dateLayout, request.EndDate)
	if err != nil {
		return zero, zero, &api.APIError{Code: http.StatusBadRequest, Message: "end_date must be YYYY-MM-DD"}
	}
	if end.Before(start) {
		return zero, zero, &api.APIError{Code: http.StatusBadRequest, Message: "end_date before start_date"}
	}

	exists, err := t.store.EmployeeExists(request.EmployeeID)
	if err != nil {
		return zero, zero, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check employee"}
	}
	if !exists {
		return zero, zero, &api.APIError{Code: http.StatusNotFound, Message: "employee not found"}
	}

	return start, end, nil
}
