package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/attendance/internal/services"
)

type CoursesController struct {
	courses *services.CourseService
}

func NewCoursesController(courses *services.CourseService) *CoursesController {
	return &CoursesController{courses: courses}
}

type courseRequest struct {
	CourseCode string `json:"course_code" binding:"required"`
}

func (controller *CoursesController) ListCourses(c *gin.Context) {
	courses, err := controller.courses.ListCourses(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"courses": courses, "count": len(courses)})
}

func (controller *CoursesController) AddOrUpdateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "course_code is required"})
		return
	}

	course, err := controller.courses.AddOrUpdateCourse(c.Request.Context(), req.CourseCode)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, course)
}

func (controller *CoursesController) GetCourseByCode(c *gin.Context) {
	course, err := controller.courses.GetCourseByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, course)
}

func (controller *CoursesController) DeleteCourse(c *gin.Context) {
	if err := controller.courses.DeleteCourse(c.Request.Context(), c.Param("code")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"deleted": c.Param("code")})
}
