package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/attendance/internal/entities"
	"github.com/mrlokans/attendance/internal/services"
)

type StudentsController struct {
	students *services.StudentService
}

func NewStudentsController(students *services.StudentService) *StudentsController {
	return &StudentsController{students: students}
}

type studentRequest struct {
	EnrollmentNumber string `json:"enrollment_number" binding:"required"`
	Name             string `json:"name"`
}

func (controller *StudentsController) GetStudentsByCourse(c *gin.Context) {
	students, err := controller.students.GetStudentsByCourse(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"students": students, "count": len(students)})
}

func (controller *StudentsController) AddStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "enrollment_number is required"})
		return
	}

	student := entities.Student{
		EnrollmentNumber: req.EnrollmentNumber,
		CourseCode:       c.Param("code"),
		Name:             req.Name,
	}
	if err := controller.students.AddStudent(c.Request.Context(), student); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, student)
}

func (controller *StudentsController) UpdateStudent(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	student := entities.Student{
		EnrollmentNumber: c.Param("enrollment"),
		CourseCode:       c.Param("code"),
		Name:             req.Name,
	}
	if err := controller.students.UpdateStudent(c.Request.Context(), student); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, student)
}

func (controller *StudentsController) DeleteStudent(c *gin.Context) {
	err := controller.students.DeleteStudent(c.Request.Context(), c.Param("enrollment"), c.Param("code"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"deleted": c.Param("enrollment")})
}
