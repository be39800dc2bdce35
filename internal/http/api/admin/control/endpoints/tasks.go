package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harborlight/carecal/internal/db"
	"github.com/harborlight/carecal/internal/http/api"
	"github.com/harborlight/carecal/internal/http/api/admin/control/packets"
	"github.com/harborlight/carecal/internal/model"
)

type TaskController struct {
	store db.Store
}

func TaskModule(store db.Store) api.Module {
	ctl := &TaskController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/tasks", ctl.listTasks)
		c.POST("/tasks", ctl.createTask)
		c.DELETE("/tasks/:id", ctl.deleteTask)
	})
}

func (t *TaskController) listTasks(_ *gin.Context, _ *model.User) (any, *api.APIError) {
	list, err := t.store.ListTasks()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list tasks"}
	}

	response := make([]packets.TaskResponse, 0, len(list))
	for _, it := range list {
		response = append(response, packets.TaskResponse{
			ID:           it.ID,
			EmployeeID:   it.EmployeeID,
			EmployeeName: it.EmployeeName,
			Task:         it.Task.Task,
			Status:       it.Status,
		})
	}
	return response, nil
}

func (t *TaskController) createTask(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var request packets.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	exists, err := t.store.EmployeeExists(request.EmployeeID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check employee"}
	}
	if !exists {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "employee not found"}
	}

	created, err := t.store.CreateTask(request.EmployeeID, request.Task, request.Status)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create task"}
	}

	return created, nil
}

func (t *TaskController) deleteTask(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid task id"}
	}

	deleted, err := t.store.DeleteTask(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete task"}
	}
	if !deleted {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "task not found"}
	}

	return gin.H{"message": "deleted"}, nil
}
