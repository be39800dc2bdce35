package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harborlight/carecal/internal/db"
	"github.com/harborlight/carecal/internal/http/api"
	"github.com/harborlight/carecal/internal/http/api/admin/control/packets"
	"github.com/harborlight/carecal/internal/model"
	"github.com/harborlight/carecal/internal/mqtt"
)

type EmployeeController struct {
	store  db.Store
	boards *mqtt.Notifier
}

func EmployeeModule(store db.Store, boards *mqtt.Notifier) api.Module {
	ctl := &EmployeeController{store: store, boards: boards}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/employees", ctl.listEmployees)
		c.GET("/employees/:id", ctl.getEmployee)
		c.POST("/employees", ctl.createEmployee)
		c.PUT("/employees/:id/rate", ctl.updateRate)
		c.DELETE("/employees/:id", ctl.deleteEmployee)
	})
}

func (e *EmployeeController) listEmployees(_ *gin.Context, _ *model.User) (any, *api.APIError) {
	list, err := e.store.ListEmployees()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list employees"}
	}

	response := make([]packets.EmployeeResponse, 0, len(list))
	for _, it := range list {
		response = append(response, packets.EmployeeResponse{
			ID:         it.ID,
			Name:       it.Name,
			Position:   it.Position,
			HourlyRate: it.HourlyRate,
		})
	}
	return response, nil
}

func (e *EmployeeController) getEmployee(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid employee id"}
	}

	employee, err := e.store.GetEmployeeByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load employee"}
	}
	if employee == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "employee not found"}
	}

	return packets.EmployeeResponse{
		ID:         employee.ID,
		Name:       employee.Name,
		Position:   employee.Position,
		HourlyRate: employee.HourlyRate,
	}, nil
}

func (e *EmployeeController) createEmployee(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var request packets.CreateEmployeeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	created, err := e.store.CreateEmployee(request.Name, request.Position)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create employee"}
	}

	return packets.EmployeeResponse{
		ID:         created.ID,
		Name:       created.Name,
		Position:   created.Position,
		HourlyRate: created.HourlyRate,
	}, nil
}

func (e *EmployeeController) updateRate(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid employee id"}
	}

	var request packets.UpdateEmployeeRateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	updated, err := e.store.UpdateEmployeeRate(id, request.HourlyRate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update rate"}
	}
	if !updated {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "employee not found"}
	}

	return gin.H{"message": "rate updated"}, nil
}

// deleteEmployee removes the employee and everything hanging off them
// (shifts, attendance, tasks, time off, adjustments) in one transaction.
func (e *EmployeeController) deleteEmployee(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid employee id"}
	}

	exists, err := e.store.EmployeeExists(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check employee"}
	}
	if !exists {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "employee not found"}
	}

	if err := e.store.DeleteEmployee(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete employee"}
	}

	e.boards.BoardChanged("employee deleted")
	return gin.H{"message": "deleted"}, nil
}
