package response

import (
	"github.com/google/uuid"
)

type CreateCourseResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
