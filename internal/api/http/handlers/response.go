package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/creatorhub/memberkit/internal/auth"
	"github.com/creatorhub/memberkit/internal/domain"
	apperrors "github.com/creatorhub/memberkit/pkg/util"
)

const statusSuccess = "success"

// respond writes data wrapped in the success envelope.
func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(domain.Envelope[any]{
		Data:      data,
		Status:    statusSuccess,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Path(),
	})
}

func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return p, nil
}
