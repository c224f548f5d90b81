package handlers

import (
	"time"

	"github.com/SilverSkills/user_service/internal/domain"
	"github.com/SilverSkills/user_service/internal/dto"
	"github.com/SilverSkills/user_service/internal/helper"
	"github.com/SilverSkills/user_service/internal/helper/utils"
	"github.com/SilverSkills/user_service/internal/interfaces"
	"github.com/SilverSkills/user_service/internal/services"
	"github.com/SilverSkills/user_service/internal/validators"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type UserHandler struct {
	svc      services.UserService
	auth     helper.Auth
	sessions interfaces.SessionStore
}

func NewUserHandler(svc services.UserService, auth helper.Auth, sessions interfaces.SessionStore) *UserHandler {
	return &UserHandler{
		svc:      svc,
		auth:     auth,
		sessions: sessions,
	}
}

func (h *UserHandler) Signup(ctx *fiber.Ctx) error {
	var requestBody dto.SignupRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if errs := validators.Validate(requestBody); len(errs) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	user, err := h.svc.Signup(requestBody)
	if err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, dto.UserSummary{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Verified: user.VerificationStatus == domain.VerificationVerified,
	})
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	if errs := validators.Validate(requestBody); len(errs) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	user, err := h.svc.Login(requestBody)
	if err != nil {
		return serviceError(ctx, err)
	}

	token, sessionID, err := h.auth.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not create session")
	}

	if err := h.sessions.SetSession(ctx.UserContext(), sessionID, user.ID, helper.SessionTTL); err != nil {
		log.Error().Err(err).Msg("session store write failed")
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not create session")
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     helper.SessionCookieName,
		Value:    token,
		MaxAge:   int(helper.SessionTTL.Seconds()),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.LoginResponse{
		User: dto.UserSummary{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Verified: user.VerificationStatus == domain.VerificationVerified,
		},
	})
}

func (h *UserHandler) Logout(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "not authenticated")
	}

	if err := h.sessions.DeleteSession(ctx.UserContext(), claims.SessionID); err != nil {
		log.Warn().Err(err).Msg("session delete failed")
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     helper.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "logged out")
}

func (h *UserHandler) GetProfile(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	user, err := h.svc.GetProfile(userID)
	if err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, toProfileResponse(user))
}

func (h *UserHandler) UpdateProfile(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.UpdateProfileRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid JSON")
	}

	user, err := h.svc.UpdateProfile(userID, requestBody)
	if err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, toProfileResponse(user))
}

func (h *UserHandler) ChangePassword(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.ChangePasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid JSON")
	}

	if errs := validators.Validate(requestBody); len(errs) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	if err := h.svc.ChangePassword(userID, requestBody); err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "password updated")
}

func (h *UserHandler) DeleteAccount(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "not authenticated")
	}

	if err := h.svc.DeleteAccount(claims.UserID); err != nil {
		return serviceError(ctx, err)
	}

	if err := h.sessions.DeleteSession(ctx.UserContext(), claims.SessionID); err != nil {
		log.Warn().Err(err).Msg("session delete failed")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "account deleted")
}

func (h *UserHandler) ListSkills(ctx *fiber.Ctx) error {
	skills, err := h.svc.ListSkills()
	if err != nil {
		return serviceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, skills)
}

func (h *UserHandler) GetUserSkills(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	ids, err := h.svc.GetUserSkills(userID)
	if err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.UserSkillsResponse{Selected: ids})
}

func (h *UserHandler) SetUserSkills(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.SetSkillsRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid JSON")
	}

	if err := h.svc.SetUserSkills(userID, requestBody.SkillIDs); err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "skills updated")
}

func toProfileResponse(user *domain.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		Bio:                user.Bio,
		Age:                user.Age,
		Address:            user.Address,
		AvailableMorning:   user.AvailableMorning,
		AvailableAfternoon: user.AvailableAfternoon,
		AvailableEvening:   user.AvailableEvening,
		AvatarURL:          user.AvatarURL,
		VerificationStatus: string(user.VerificationStatus),
		CreatedAt:          user.CreatedAt.Format(time.RFC3339),
	}
}
