package api

import (
	"context"
	"errors"
	"net/http"

	reqdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/request"
	resdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/response"
	"github.com/AI-Authority/AI-Authority-sub000/internal/handler/middleware"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseHandler struct {
	courseCommands commands.CourseCommands
	courseQueries  queries.CourseQueries
}

func NewCourseHandler(courseCommands commands.CourseCommands, courseQueries queries.CourseQueries) *CourseHandler {
	return &CourseHandler{
		courseCommands: courseCommands,
		courseQueries:  courseQueries,
	}
}

// @Summary List approved courses
// @Description Public catalogue of purchasable courses
// @Tags courses
// @Produce json
// @Success 200 {array} queries.CourseListItem
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	items, err := h.courseQueries.ListApproved(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get course
// @Description Get course details by ID
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} queries.CourseView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid course ID format",
		})
		return
	}

	view, err := h.courseQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Course not found",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Submit a course
// @Description Trainers submit courses for admin review
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCourseRequest true "Course submission"
// @Success 201 {object} resdto.CreateCourseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /courses [post]
func (h *CourseHandler) SubmitCourse(c *gin.Context) {
	trainerID, ok := middleware.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.courseCommands.SubmitCourse(c.Request.Context(), req, trainerID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCourse):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid course data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateCourseResponse{ID: id, Status: "pending"})
}

// @Summary List pending courses
// @Description Admin review queue of submitted courses
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.CourseListItem
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/courses/pending [get]
func (h *CourseHandler) ListPendingCourses(c *gin.Context) {
	items, err := h.courseQueries.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Approve course
// @Description Approve a pending course, making it purchasable
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/courses/{id}/approve [post]
func (h *CourseHandler) ApproveCourse(c *gin.Context) {
	h.review(c, h.courseCommands.ApproveCourse)
}

// @Summary Reject course
// @Description Reject a pending course
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/courses/{id}/reject [post]
func (h *CourseHandler) RejectCourse(c *gin.Context) {
	h.review(c, h.courseCommands.RejectCourse)
}

func (h *CourseHandler) review(c *gin.Context, op func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid course ID format",
		})
		return
	}

	if err := op(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Course not found",
			})
		case errors.Is(err, commands.ErrCourseNotReviewable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Course is not pending review",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
