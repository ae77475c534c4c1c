package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/attendance/internal/entities"
	"github.com/mrlokans/attendance/internal/services"
)

type AttendanceController struct {
	attendance *services.AttendanceService
}

func NewAttendanceController(attendance *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendance: attendance}
}

type markRequest struct {
	CourseCode       string `json:"course_code" binding:"required"`
	Date             string `json:"date" binding:"required"`
	EnrollmentNumber string `json:"enrollment_number" binding:"required"`
	Status           string `json:"status" binding:"required"`
}

func (controller *AttendanceController) MarkAttendance(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "course_code, date, enrollment_number and status are required"})
		return
	}

	err := controller.attendance.MarkAttendance(
		c.Request.Context(),
		req.CourseCode, req.Date, req.EnrollmentNumber,
		entities.AttendanceStatus(req.Status),
	)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"marked": true})
}

func (controller *AttendanceController) MarkAttendanceBatch(c *gin.Context) {
	var req struct {
		Records []markRequest `json:"records" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "records are required"})
		return
	}

	records := make([]entities.Attendance, 0, len(req.Records))
	for _, r := range req.Records {
		records = append(records, entities.Attendance{
			CourseCode:       r.CourseCode,
			Date:             r.Date,
			EnrollmentNumber: r.EnrollmentNumber,
			Status:           entities.AttendanceStatus(r.Status),
		})
	}
	if err := controller.attendance.MarkAttendanceBatch(c.Request.Context(), records); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"marked": len(records)})
}

// GetCourseAttendance lists a course's marks; an optional ?date=
// narrows the result to one day.
func (controller *AttendanceController) GetCourseAttendance(c *gin.Context) {
	courseCode := c.Param("code")

	var records []entities.Attendance
	var err error
	if date := c.Query("date"); date != "" {
		records, err = controller.attendance.GetAttendanceByCourseAndDate(c.Request.Context(), courseCode, date)
	} else {
		records, err = controller.attendance.GetAllAttendanceForCourse(c.Request.Context(), courseCode)
	}
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"attendance": records, "count": len(records)})
}

func (controller *AttendanceController) GetStudentAttendance(c *gin.Context) {
	records, err := controller.attendance.GetAttendanceForStudentInCourse(
		c.Request.Context(), c.Param("code"), c.Param("enrollment"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"attendance": records, "count": len(records)})
}

func (controller *AttendanceController) DeleteRecord(c *gin.Context) {
	courseCode := c.Query("course_code")
	date := c.Query("date")
	enrollment := c.Query("enrollment_number")
	if courseCode == "" || date == "" || enrollment == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "course_code, date and enrollment_number query parameters are required"})
		return
	}

	if err := controller.attendance.DeleteAttendanceRecord(c.Request.Context(), courseCode, date, enrollment); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"deleted": true})
}
