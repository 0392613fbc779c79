package api

import (
	"net/http"

	"github.com/AI-Authority/AI-Authority-sub000/internal/handler/middleware"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	enrollmentQueries queries.EnrollmentQueries
}

func NewEnrollmentHandler(enrollmentQueries queries.EnrollmentQueries) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentQueries: enrollmentQueries}
}

// @Summary List my enrollments
// @Description List the courses the authenticated member holds access to
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.EnrollmentView
// @Failure 401 {object} map[string]string
// @Router /enrollments [get]
func (h *EnrollmentHandler) ListMyEnrollments(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.enrollmentQueries.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, views)
}
