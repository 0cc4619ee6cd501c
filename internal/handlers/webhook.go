package handlers

import (
	"errors"
	"log"

	domain "payloow/internal/errors"
	"payloow/internal/services/webhook"

	"github.com/gofiber/fiber/v2"
)

// WebhookHandler receives processor event notifications. A non-2xx
// response makes the processor redeliver, so only signature failures
// get a 4xx; storage failures return 500 and rely on the reconciler
// being idempotent across redeliveries.
type WebhookHandler struct {
	webhookService webhook.Service
}

func NewWebhookHandler(webhookService webhook.Service) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

func (h *WebhookHandler) HandlePaystack(c *fiber.Ctx) error {
	signature := c.Get("x-paystack-signature")

	err := h.webhookService.Handle(c.Context(), c.Body(), signature)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid signature",
			})
		}
		log.Printf("webhook processing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Webhook processing failed",
		})
	}

	return c.JSON(fiber.Map{"message": true})
}
