package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/attendance/internal/database"
	"github.com/mrlokans/attendance/internal/services"
	"github.com/mrlokans/attendance/internal/tasks"
)

// RouterConfig carries every dependency of the HTTP surface so the
// router can be built in one place (and in tests without the full
// entrypoint).
type RouterConfig struct {
	Database   *database.Database
	Courses    *services.CourseService
	Students   *services.StudentService
	Attendance *services.AttendanceService
	TaskClient *tasks.Client
	Version    string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.Database, cfg.Version)
	coursesController := NewCoursesController(cfg.Courses)
	studentsController := NewStudentsController(cfg.Students)
	attendanceController := NewAttendanceController(cfg.Attendance)
	exportController := NewExportController(cfg.Attendance, cfg.TaskClient)

	api := router.Group("/api")
	{
		api.GET("/health", healthController.Status)

		api.GET("/courses", coursesController.ListCourses)
		api.POST("/courses", coursesController.AddOrUpdateCourse)
		api.GET("/courses/:code", coursesController.GetCourseByCode)
		api.DELETE("/courses/:code", coursesController.DeleteCourse)

		api.GET("/courses/:code/students", studentsController.GetStudentsByCourse)
		api.POST("/courses/:code/students", studentsController.AddStudent)
		api.PUT("/courses/:code/students/:enrollment", studentsController.UpdateStudent)
		api.DELETE("/courses/:code/students/:enrollment", studentsController.DeleteStudent)

		api.POST("/attendance", attendanceController.MarkAttendance)
		api.POST("/attendance/batch", attendanceController.MarkAttendanceBatch)
		api.DELETE("/attendance", attendanceController.DeleteRecord)
		api.GET("/courses/:code/attendance", attendanceController.GetCourseAttendance)
		api.GET("/courses/:code/students/:enrollment/attendance", attendanceController.GetStudentAttendance)

		api.POST("/courses/:code/export", exportController.ExportCourse)
		api.POST("/courses/:code/export/async", exportController.ExportCourseAsync)
	}

	return router
}
