package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// stripeSignatureHeader carries the provider's payload signature.
const stripeSignatureHeader = "Stripe-Signature"

type WebhookHandler struct {
	webhookCommands commands.WebhookCommands
}

func NewWebhookHandler(webhookCommands commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{webhookCommands: webhookCommands}
}

// @Summary Payment provider webhook
// @Description Receive payment confirmations. Responds 400 only on signature failure; any failure after authentication is acknowledged with 200 so the provider does not retry.
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	err = h.webhookCommands.HandleEvent(c.Request.Context(), payload, c.GetHeader(stripeSignatureHeader))
	if err != nil {
		if errors.Is(err, commands.ErrWebhookSignature) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid webhook signature",
			})
			return
		}
		// Reconciliation failures are logged inside the usecase and must
		// still acknowledge the delivery.
	}

	c.JSON(http.StatusOK, gin.H{"received": "true"})
}
