package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/SilverSkills/user_service/internal/dto"
	"github.com/SilverSkills/user_service/internal/helper/utils"
	"github.com/SilverSkills/user_service/internal/interfaces"
	"github.com/SilverSkills/user_service/internal/services"
	pkgutils "github.com/SilverSkills/user_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const (
	maxAvatarSize  = 5 * 1024 * 1024 // 5MB
	avatarMaxWidth = 512
	avatarQuality  = 85
)

type UploadHandler struct {
	svc      services.UserService
	uploader interfaces.Uploader
}

func NewUploadHandler(svc services.UserService, uploader interfaces.Uploader) *UploadHandler {
	return &UploadHandler{
		svc:      svc,
		uploader: uploader,
	}
}

// UploadAvatar accepts a multipart image, normalizes it and stores the
// resulting URL on the logged-in user's profile.
//
// POST /api/profile/avatar
// form-data: file=<image>
func (h *UploadHandler) UploadAvatar(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	file, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	if !allowed[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg/jpeg/png/webp allowed")
	}

	if file.Size > maxAvatarSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	raw, err := pkgutils.ReadAllLimit(f, maxAvatarSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	normalized, err := pkgutils.NormalizeToJPG(raw, avatarMaxWidth, avatarQuality)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "unreadable image")
	}

	url, err := h.uploader.UploadBytes(
		ctx.UserContext(),
		"avatars",
		fmt.Sprintf("user_%d", userID),
		normalized,
	)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "upload failed")
	}

	if _, err := h.svc.UpdateAvatar(userID, url); err != nil {
		return serviceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.AvatarResponse{AvatarURL: url})
}
