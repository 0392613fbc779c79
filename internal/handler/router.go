package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"
	"github.com/AI-Authority/AI-Authority-sub000/internal/handler/api"
	"github.com/AI-Authority/AI-Authority-sub000/internal/handler/middleware"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth       *api.AuthHandler
	Checkout   *api.CheckoutHandler
	Webhook    *api.WebhookHandler
	Course     *api.CourseHandler
	Coupon     *api.CouponHandler
	Enrollment *api.EnrollmentHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		courses := apiGroup.Group("/courses")
		{
			addRoutes(courses, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Course.ListCourses},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Course.GetCourse},
			})

			submit := courses.Group("")
			submit.Use(authMiddleware.RequireAuth(), authMiddleware.RequireMemberType(member.TypeTrainer))
			addRoutes(submit, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Course.SubmitCourse},
			})
		}

		// Validation needs the caller's membership for eligibility checks;
		// checkout tolerates anonymity and degrades to unattributed usage.
		coupons := apiGroup.Group("/coupons")
		coupons.Use(authMiddleware.RequireAuth())
		addRoutes(coupons, []route{
			{Method: http.MethodPost, Path: "/validate", Handler: h.Checkout.ValidateCoupon},
		})

		checkout := apiGroup.Group("/checkout")
		checkout.Use(authMiddleware.OptionalAuth())
		addRoutes(checkout, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Checkout.CreateCheckout},
		})

		enrollments := apiGroup.Group("/enrollments")
		enrollments.Use(authMiddleware.RequireAuth())
		addRoutes(enrollments, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Enrollment.ListMyEnrollments},
		})

		webhooks := apiGroup.Group("/webhooks")
		addRoutes(webhooks, []route{
			{Method: http.MethodPost, Path: "/stripe", Handler: h.Webhook.HandleStripeEvent},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(member.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/coupons", Handler: h.Coupon.CreateCoupon},
				{Method: http.MethodGet, Path: "/coupons", Handler: h.Coupon.ListCoupons},
				{Method: http.MethodGet, Path: "/coupons/:id/usages", Handler: h.Coupon.ListCouponUsages},
				{Method: http.MethodDelete, Path: "/coupons/:id", Handler: h.Coupon.DeactivateCoupon},
				{Method: http.MethodPost, Path: "/coupons/:id/reconcile", Handler: h.Coupon.ReconcileUses},
				{Method: http.MethodGet, Path: "/courses/pending", Handler: h.Course.ListPendingCourses},
				{Method: http.MethodPost, Path: "/courses/:id/approve", Handler: h.Course.ApproveCourse},
				{Method: http.MethodPost, Path: "/courses/:id/reject", Handler: h.Course.RejectCourse},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
