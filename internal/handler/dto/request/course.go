package request

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents" binding:"min=0"`
	ModuleCount int32  `json:"module_count,omitempty" binding:"omitempty,min=0"`
}
