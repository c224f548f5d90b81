package handlers

import (
	"github.com/SilverSkills/user_service/internal/dto"
	"github.com/SilverSkills/user_service/internal/helper/utils"
	"github.com/SilverSkills/user_service/internal/services"
	"github.com/SilverSkills/user_service/internal/validators"
	"github.com/gofiber/fiber/v2"
)

type VerificationHandler struct {
	svc services.VerificationService
}

func NewVerificationHandler(svc services.VerificationService) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

// Submit creates a verification request for the logged-in user.
func (h *VerificationHandler) Submit(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.SubmitVerificationRequest
	if err := ctx.BodyParser(&requestBody); err != nil && len(ctx.Body()) > 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid JSON")
	}

	req, err := h.svc.Submit(userID, requestBody.Note)
	if err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, req)
}

// GetStatus returns the logged-in user's status and recent request history.
func (h *VerificationHandler) GetStatus(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	status, err := h.svc.GetStatus(userID)
	if err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, status)
}

// ListPending returns the admin review queue, oldest submissions first.
func (h *VerificationHandler) ListPending(ctx *fiber.Ctx) error {
	pending, err := h.svc.ListPending()
	if err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, pending)
}

func (h *VerificationHandler) Approve(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.ApproveVerificationRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid JSON")
	}

	if errs := validators.Validate(requestBody); len(errs) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	result, err := h.svc.Approve(requestBody.RequestID, adminID, requestBody.Note)
	if err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *VerificationHandler) Reject(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.RejectVerificationRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid JSON")
	}

	if errs := validators.Validate(requestBody); len(errs) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	result, err := h.svc.Reject(requestBody.RequestID, adminID, requestBody.Reason)
	if err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *VerificationHandler) Revoke(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.RevokeVerificationRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid JSON")
	}

	if errs := validators.Validate(requestBody); len(errs) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	result, err := h.svc.Revoke(requestBody.UserID, adminID, requestBody.Reason)
	if err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}
