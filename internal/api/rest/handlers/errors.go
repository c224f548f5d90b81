package handlers

import (
	"errors"

	"github.com/SilverSkills/user_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// statusForError translates service failure kinds into HTTP status codes.
// Anything unknown is a 500 and gets logged here, at the boundary.
func statusForError(err error) int {
	var locked *services.AccountLockedError

	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRequestNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyVerified),
		errors.Is(err, services.ErrRequestAlreadyPending),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrNotVerified),
		errors.Is(err, services.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrMissingReason),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrWrongPassword):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.As(err, &locked):
		return fiber.StatusTooManyRequests
	default:
		log.Error().Err(err).Msg("unexpected service error")
		return fiber.StatusInternalServerError
	}
}

func serviceError(ctx *fiber.Ctx, err error) error {
	status := statusForError(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "server error"
	}
	return ctx.Status(status).JSON(fiber.Map{"error": msg})
}
