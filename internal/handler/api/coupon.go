package api

import (
	"errors"
	"net/http"

	reqdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/request"
	resdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/response"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CouponHandler covers the admin-facing coupon surface. Redemption-side
// validation lives on CheckoutHandler.
type CouponHandler struct {
	couponCommands commands.CouponCommands
	couponQueries  queries.CouponQueries
}

func NewCouponHandler(couponCommands commands.CouponCommands, couponQueries queries.CouponQueries) *CouponHandler {
	return &CouponHandler{
		couponCommands: couponCommands,
		couponQueries:  couponQueries,
	}
}

// @Summary Create coupon
// @Description Create a coupon with either a fixed or percentage discount
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Coupon definition"
// @Success 201 {object} resdto.CreateCouponResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/coupons [post]
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.couponCommands.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCouponInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid coupon definition",
			})
		case errors.Is(err, commands.ErrCouponDuplicateCode):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Coupon code already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateCouponResponse{ID: id})
}

// @Summary List coupons
// @Description List every coupon with its usage counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.CouponView
// @Router /admin/coupons [get]
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	views, err := h.couponQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary List coupon usages
// @Description List the redemption ledger of one coupon
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 200 {array} queries.CouponUsageView
// @Failure 400 {object} map[string]string
// @Router /admin/coupons/{id}/usages [get]
func (h *CouponHandler) ListCouponUsages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid coupon ID format",
		})
		return
	}

	views, err := h.couponQueries.ListUsages(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Deactivate coupon
// @Description Deactivate a coupon; subsequent validations report an invalid code
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/coupons/{id} [delete]
func (h *CouponHandler) DeactivateCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid coupon ID format",
		})
		return
	}

	if err := h.couponCommands.DeactivateCoupon(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coupon not found",
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

// @Summary Reconcile coupon usage counter
// @Description Reset the usage counter to the ledger's row count
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} resdto.ReconcileUsesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/coupons/{id}/reconcile [post]
func (h *CouponHandler) ReconcileUses(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid coupon ID format",
		})
		return
	}

	result, err := h.couponCommands.ReconcileUses(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coupon not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReconcileResult(result))
}
