//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/AI-Authority/AI-Authority-sub000/internal/handler/api"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"
	"github.com/AI-Authority/AI-Authority-sub000/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubWebhookCommands struct {
	err         error
	lastPayload []byte
	lastSig     string
}

func (s *stubWebhookCommands) HandleEvent(_ context.Context, payload []byte, signatureHeader string) error {
	s.lastPayload = payload
	s.lastSig = signatureHeader
	return s.err
}

func webhookRouter(stub *stubWebhookCommands) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhooks/stripe", api.NewWebhookHandler(stub).HandleStripeEvent)
	return router
}

func TestHandleStripeEvent(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)

	t.Run("success: delivery acknowledged", func(t *testing.T) {
		stub := &stubWebhookCommands{}
		router := webhookRouter(stub)

		rec := httptest.PerformRawRequest(t, router, http.MethodPost, "/webhooks/stripe", payload,
			map[string]string{"Stripe-Signature": "t=1,v1=sig"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"received":"true"}`, rec.Body.String())
		assert.Equal(t, payload, stub.lastPayload)
		assert.Equal(t, "t=1,v1=sig", stub.lastSig)
	})

	t.Run("error: 400 on signature failure", func(t *testing.T) {
		stub := &stubWebhookCommands{err: commands.ErrWebhookSignature}
		router := webhookRouter(stub)

		rec := httptest.PerformRawRequest(t, router, http.MethodPost, "/webhooks/stripe", payload,
			map[string]string{"Stripe-Signature": "t=1,v1=bad"})

		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid webhook signature")
	})

	t.Run("success: post-signature failures still acknowledged", func(t *testing.T) {
		stub := &stubWebhookCommands{err: errors.New("database unavailable")}
		router := webhookRouter(stub)

		rec := httptest.PerformRawRequest(t, router, http.MethodPost, "/webhooks/stripe", payload,
			map[string]string{"Stripe-Signature": "t=1,v1=sig"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
