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
	"github.com/harborlight/carecal/internal/mqtt"
	"github.com/harborlight/carecal/internal/schedule"
)

type ShiftController struct {
	store  db.Store
	engine *schedule.Engine
	boards *mqtt.Notifier
}

func NewShiftController(store db.Store, engine *schedule.Engine, boards *mqtt.Notifier) *ShiftController {
	return &ShiftController{store: store, engine: engine, boards: boards}
}

func ShiftModule(store db.Store, engine *schedule.Engine, boards *mqtt.Notifier) api.Module {
	ctl := NewShiftController(store, engine, boards)
	return api.ModuleFunc(func(c *api.Controller) {
		// calendar board feed
		c.GET("/shifts", ctl.listShifts)

		// single shift or weekly recurring series
		c.POST("/shifts", ctl.createShifts)
		c.DELETE("/shifts/:id", ctl.deleteShift)

		// single-occurrence operations
		c.POST("/shifts/:id/swap", ctl.swapShift)
		c.PUT("/shifts/:id/day", ctl.editDay)

		// whole-series operations
		c.PUT("/series/:series_id", ctl.updateSeries)
		c.DELETE("/series/:series_id", ctl.deleteSeries)
	})
}

func (s *ShiftController) listShifts(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var query packets.ListShiftsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var (
		list []model.ShiftWithEmployee
		err  error
	)
	if query.From != nil && query.To != nil {
		from, ferr := time.Parse(dateLayout, *query.From)
		to, terr := time.Parse(dateLayout, *query.To)
		if ferr != nil || terr != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "from/to must be YYYY-MM-DD"}
		}
		list, err = s.store.ListShiftsBetween(from, to)
	} else {
		list, err = s.store.ListShifts()
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list shifts"}
	}

	response := make([]packets.ShiftResponse, 0, len(list))
	for _, it := range list {
		response = append(response, shiftResponse(it))
	}
	return response, nil
}

func shiftResponse(s model.ShiftWithEmployee) packets.ShiftResponse {
	out := packets.ShiftResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		StartAt:      s.StartAt.Format(startAtLayout),
		SeriesID:     s.SeriesID,
	}
	if s.EndAt != nil {
		end := s.EndAt.Format(startAtLayout)
		out.EndAt = &end
	}
	return out
}

func (s *ShiftController) createShifts(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var request packets.CreateShiftRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	startAt, err := time.Parse(startAtLayout, request.StartAt)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "start_at must be YYYY-MM-DDTHH:MM"}
	}

	exists, err := s.store.EmployeeExists(request.EmployeeID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check employee"}
	}
	if !exists {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "employee not found"}
	}

	input := schedule.CreateShiftsInput{
		EmployeeID: request.EmployeeID,
		StartAt:    startAt,
		Repeat:     request.RepeatWeekly,
		Weekdays:   request.Weekdays,
	}
	if request.EndTime != nil {
		end, err := schedule.ParseTimeOfDay(*request.EndTime)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "end_time must be HH:MM"}
		}
		input.EndTime = &end
	}
	if request.RepeatUntil != nil {
		until, err := time.Parse(dateLayout, *request.RepeatUntil)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "repeat_until must be YYYY-MM-DD"}
		}
		input.Until = &until
	}

	created, err := s.engine.CreateShifts(input)
	if err != nil {
		return nil, engineError(err)
	}

	s.boards.BoardChanged("shifts created")
	return packets.CreatedResponse{Created: created}, nil
}

func (s *ShiftController) deleteShift(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid shift id"}
	}

	deleted, err := s.store.DeleteShift(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete shift"}
	}
	if !deleted {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "shift not found"}
	}

	s.boards.BoardChanged("shift deleted")
	return gin.H{"message": "deleted"}, nil
}

func (s *ShiftController) swapShift(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid shift id"}
	}

	var request packets.SwapShiftRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	exists, err := s.store.EmployeeExists(request.NewEmployeeID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check employee"}
	}
	if !exists {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "employee not found"}
	}

	if err := s.engine.ReassignShift(id, request.NewEmployeeID); err != nil {
		return nil, engineError(err)
	}

	s.boards.BoardChanged("shift reassigned")
	return gin.H{"message": "reassigned"}, nil
}

func (s *ShiftController) editDay(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid shift id"}
	}

	var request packets.EditDayRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	day, err := time.Parse(dateLayout, request.ShiftDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "shift_date must be YYYY-MM-DD"}
	}
	start, err := schedule.ParseTimeOfDay(request.Time)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "time must be HH:MM"}
	}

	input := schedule.EditDayInput{
		ShiftID:    id,
		Date:       day,
		Start:      start,
		EmployeeID: request.EmployeeID,
	}
	if request.EndTime != nil {
		end, err := schedule.ParseTimeOfDay(*request.EndTime)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "end_time must be HH:MM"}
		}
		input.End = &end
	}

	if err := s.engine.EditDay(input); err != nil {
		return nil, engineError(err)
	}

	s.boards.BoardChanged("shift day edited")
	return gin.H{"message": "day updated"}, nil
}

func (s *ShiftController) updateSeries(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	seriesID := ctx.Param("series_id")
	if seriesID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "series_id required"}
	}

	var request packets.UpdateSeriesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	start, err := schedule.ParseTimeOfDay(request.Time)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "time must be HH:MM"}
	}

	input := schedule.ReplaceSeriesInput{
		SeriesID:   seriesID,
		Start:      start,
		Weekdays:   request.Weekdays,
		EmployeeID: request.EmployeeID,
	}
	if request.EndTime != nil {
		end, err := schedule.ParseTimeOfDay(*request.EndTime)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "end_time must be HH:MM"}
		}
		input.End = &end
	}
	if request.StartDate != nil {
		pivot, err := time.Parse(dateLayout, *request.StartDate)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "start_date must be YYYY-MM-DD"}
		}
		input.PivotDate = &pivot
	}
	if request.RepeatUntil != nil {
		until, err := time.Parse(dateLayout, *request.RepeatUntil)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "repeat_until must be YYYY-MM-DD"}
		}
		input.Until = &until
	}

	updated, err := s.engine.ReplaceSeriesFrom(input)
	if err != nil {
		return nil, engineError(err)
	}

	s.boards.BoardChanged("series updated")
	return packets.UpdatedResponse{Updated: updated}, nil
}

func (s *ShiftController) deleteSeries(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	seriesID := ctx.Param("series_id")
	if seriesID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "series_id required"}
	}

	if err := s.engine.DeleteSeries(seriesID); err != nil {
		return nil, engineError(err)
	}

	s.boards.BoardChanged("series deleted")
	return gin.H{"message": "deleted"}, nil
}
