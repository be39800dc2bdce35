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

type AttendanceController struct {
	store db.Store
}

func AttendanceModule(store db.Store) api.Module {
	ctl := &AttendanceController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/attendance", ctl.listAttendance)
		c.POST("/attendance", ctl.recordAttendance)
		c.DELETE("/attendance/:id", ctl.deleteAttendance)
	})
}

func (a *AttendanceController) listAttendance(_ *gin.Context, _ *model.User) (any, *api.APIError) {
	list, err := a.store.ListAttendance()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list attendance"}
	}

	response := make([]packets.AttendanceResponse, 0, len(list))
	for _, it := range list {
		response = append(response, packets.AttendanceResponse{
			ID:           it.ID,
			EmployeeID:   it.EmployeeID,
			EmployeeName: it.EmployeeName,
			Date:         it.Date.Format(dateLayout),
			Status:       it.Status,
		})
	}
	return response, nil
}

func (a *AttendanceController) recordAttendance(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var request packets.CreateAttendanceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	day, err := time.Parse(dateLayout, request.Date)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD"}
	}

	exists, err := a.store.EmployeeExists(request.EmployeeID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check employee"}
	}
	if !exists {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "employee not found"}
	}

	created, err := a.store.InsertAttendance(request.EmployeeID, day, request.Status)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not record attendance"}
	}

	return created, nil
}

func (a *AttendanceController) deleteAttendance(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid attendance id"}
	}

	deleted, err := a.store.DeleteAttendance(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete attendance"}
	}
	if !deleted {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "attendance record not found"}
	}

	return gin.H{"message": "deleted"}, nil
}
