package components

import (
	"github.com/AI-Authority/AI-Authority-sub000/internal/handler"
	"github.com/AI-Authority/AI-Authority-sub000/internal/handler/api"
	"github.com/AI-Authority/AI-Authority-sub000/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCheckoutHandler,
		api.NewWebhookHandler,
		api.NewCourseHandler,
		api.NewCouponHandler,
		api.NewEnrollmentHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	checkout *api.CheckoutHandler,
	webhook *api.WebhookHandler,
	course *api.CourseHandler,
	coupon *api.CouponHandler,
	enrollment *api.EnrollmentHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:       auth,
		Checkout:   checkout,
		Webhook:    webhook,
		Course:     course,
		Coupon:     coupon,
		Enrollment: enrollment,
	}
}
