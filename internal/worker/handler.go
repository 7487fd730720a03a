package worker

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type TaskLookup interface {
	Lookup(id string) (*Handle, bool)
}

type TaskHandler struct {
	tasks TaskLookup
}

func NewTaskHandler(tasks TaskLookup) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type TaskResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status Status `json:"status" example:"succeeded"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// GetTask godoc
// @Summary Poll a dispatched task
// @Description Returns the status and, once finished, the result of an asynchronous task
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	handle, ok := h.tasks.Lookup(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "task_not_found",
		})
	}

	resp := TaskResponse{
		ID:     handle.ID(),
		Name:   handle.Name(),
		Status: handle.Status(),
	}
	if result, err, done := handle.Result(); done {
		resp.Status = StatusSucceeded
		resp.Result = result
		if err != nil {
			resp.Status = StatusFailed
			resp.Error = err.Error()
		}
	}

	return c.Status(http.StatusOK).JSON(resp)
}
