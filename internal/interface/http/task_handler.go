package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskdesk-api/internal/application"
	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/pkg/helpers"
	"github.com/oksasatya/taskdesk-api/pkg/response"
)

const (
	taskNotFound     = "SERVER: Task not found."
	taskEditNotFound = "ERROR: Task not found."
	noTasksFound     = "SERVER: No tasks found"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Client      string `json:"client" binding:"required"`
	DateStart   string `json:"dateStart"`
	DateEnd     string `json:"dateEnd"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Client      *string `json:"client"`
	DateStart   *string `json:"dateStart"`
	DateEnd     *string `json:"dateEnd"`
	Description *string `json:"description"`
}

type taskView struct {
	ID          string `json:"_id"`
	Client      string `json:"client"`
	DateStart   string `json:"dateStart"`
	DateEnd     string `json:"dateEnd"`
	Description string `json:"description"`
}

// populatedTaskView renders client as the user record, or null when the
// referenced user is gone.
type populatedTaskView struct {
	ID          string    `json:"_id"`
	Client      *userView `json:"client"`
	DateStart   string    `json:"dateStart"`
	DateEnd     string    `json:"dateEnd"`
	Description string    `json:"description"`
}

func toTaskView(t *entity.Task) taskView {
	return taskView{ID: t.ID, Client: t.ClientID, DateStart: t.DateStart, DateEnd: t.DateEnd, Description: t.Description}
}

func toPopulatedViews(tasks []entity.PopulatedTask) []populatedTaskView {
	out := make([]populatedTaskView, 0, len(tasks))
	for _, t := range tasks {
		v := populatedTaskView{ID: t.ID, DateStart: t.DateStart, DateEnd: t.DateEnd, Description: t.Description}
		if t.Client != nil {
			cv := toUserView(t.Client)
			v.Client = &cv
		}
		out = append(out, v)
	}
	return out
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.Svc.List(c.Request.Context())
	if err != nil {
		renderError(c, err, noTasksFound)
		return
	}
	response.Success(c, http.StatusOK, toPopulatedViews(tasks), "tasks", gin.H{"count": len(tasks)})
}

// Get serves /tasks/task/:id. A value that is not shaped like a task id is
// treated as a client name. A client name that happens to be a well-formed
// id is looked up as a task here; such names only resolve through
// /tasks/task/client/:clientName.
func (h *TaskHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !h.Svc.IsTaskID(id) {
		helpers.LogDebug(h.Logger, "task id not well-formed, searching by client name", logrus.Fields{
			"request_id":  c.GetString("request_id"),
			"client_name": id,
		})
		h.searchByClientName(c, id)
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err, taskNotFound)
		return
	}
	response.Success(c, http.StatusOK, toTaskView(t), "task", nil)
}

func (h *TaskHandler) SearchByClientName(c *gin.Context) {
	h.searchByClientName(c, c.Param("clientName"))
}

func (h *TaskHandler) searchByClientName(c *gin.Context, name string) {
	tasks, err := h.Svc.SearchByClientName(c.Request.Context(), name)
	if err != nil {
		renderError(c, err, noTasksFound)
		return
	}
	response.Success(c, http.StatusOK, toPopulatedViews(tasks), "tasks", gin.H{"count": len(tasks)})
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if !bindJSON(c, &req, nil) {
		return
	}
	t := &entity.Task{
		ClientID:    req.Client,
		DateStart:   req.DateStart,
		DateEnd:     req.DateEnd,
		Description: req.Description,
	}
	if err := h.Svc.Create(c.Request.Context(), t); err != nil {
		renderError(c, err, taskNotFound)
		return
	}
	response.Success(c, http.StatusCreated, toTaskView(t), "SUCCESS: Task created successfully.", nil)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if !bindJSON(c, &req, nil) {
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), c.Param("id"), entity.TaskPatch{
		ClientID:    req.Client,
		DateStart:   req.DateStart,
		DateEnd:     req.DateEnd,
		Description: req.Description,
	})
	if err != nil {
		renderError(c, err, taskEditNotFound)
		return
	}
	response.Success(c, http.StatusOK, toTaskView(t), "SUCCESS: Task updated successfully.", nil)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	t, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, taskEditNotFound)
		return
	}
	response.Success(c, http.StatusOK, toTaskView(t), "SUCCESS: Task deleted successfully.", nil)
}
