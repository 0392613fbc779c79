package api

import (
	"errors"
	"net/http"

	reqdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/request"
	resdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/response"
	"github.com/AI-Authority/AI-Authority-sub000/internal/handler/middleware"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	couponCommands   commands.CouponCommands
	checkoutCommands commands.CheckoutCommands
}

func NewCheckoutHandler(couponCommands commands.CouponCommands, checkoutCommands commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{
		couponCommands:   couponCommands,
		checkoutCommands: checkoutCommands,
	}
}

// identityFromContext reads whatever the auth middleware established. On
// optional-auth routes a missing identity is not an error.
func identityFromContext(c *gin.Context) *commands.Identity {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		return nil
	}
	memberType, ok := middleware.GetMemberType(c)
	if !ok {
		return nil
	}
	return &commands.Identity{MemberID: memberID, MemberType: memberType}
}

// couponErrorResponse maps a validator rejection to a status and message.
// Every rejection reason keeps its own message so the storefront can tell
// the member why the code did not apply.
func couponErrorResponse(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, commands.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
	case errors.Is(err, commands.ErrCourseNotAvailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Course is not available for purchase"})
	case errors.Is(err, commands.ErrCouponInvalidCode):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid coupon code"})
	case errors.Is(err, commands.ErrCouponNotYetActive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon is not active yet"})
	case errors.Is(err, commands.ErrCouponExpired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon has expired"})
	case errors.Is(err, commands.ErrCouponNotEligible):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon is not available for your membership"})
	case errors.Is(err, commands.ErrCouponLimitReached):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon usage limit reached"})
	case errors.Is(err, commands.ErrCouponAlreadyUsed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon already used"})
	default:
		return false
	}
	return true
}

// @Summary Validate a coupon
// @Description Check a coupon against a course and the caller's membership, returning the exact discount
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateCouponRequest true "Validation request"
// @Success 200 {object} resdto.ValidateCouponResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /coupons/validate [post]
func (h *CheckoutHandler) ValidateCoupon(c *gin.Context) {
	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	quote, err := h.couponCommands.ValidateCoupon(c.Request.Context(), req.Code, req.CourseID, identityFromContext(c))
	if err != nil {
		if !couponErrorResponse(c, err) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCouponQuote(quote))
}

// @Summary Create a checkout session
// @Description Start a provider-hosted payment for a course, optionally with a coupon. A zero-amount total enrolls immediately without contacting the provider.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req reqdto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	req.CouponCode = req.GetCouponCode()

	result, err := h.checkoutCommands.CreateCheckout(c.Request.Context(), req, identityFromContext(c))
	if err != nil {
		if couponErrorResponse(c, err) {
			return
		}
		switch {
		case errors.Is(err, commands.ErrAuthRequiredForFree):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required to claim a free enrollment",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}
