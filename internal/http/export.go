package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/attendance/internal/services"
	"github.com/mrlokans/attendance/internal/tasks"
)

type ExportController struct {
	attendance *services.AttendanceService
	taskClient *tasks.Client
}

func NewExportController(attendance *services.AttendanceService, taskClient *tasks.Client) *ExportController {
	return &ExportController{attendance: attendance, taskClient: taskClient}
}

// ExportCourse writes the course's attendance CSV synchronously and
// returns the file path.
func (controller *ExportController) ExportCourse(c *gin.Context) {
	path, err := controller.attendance.ExportCourseAttendance(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"path": path})
}

// ExportCourseAsync enqueues the export on the task queue and returns
// immediately.
func (controller *ExportController) ExportCourseAsync(c *gin.Context) {
	if controller.taskClient == nil {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": "task queue is not enabled"})
		return
	}

	task := tasks.ExportCourseTask{CourseCode: c.Param("code")}
	ids, err := controller.taskClient.Add(task).Save()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusAccepted, gin.H{"queued": c.Param("code"), "task_ids": ids})
}
