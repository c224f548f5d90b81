package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires every endpoint. authMw guards everything registered
// after the public block; adminMw additionally guards the review queue.
func SetupRoutes(
	app *fiber.App,
	userHandler *UserHandler,
	verificationHandler *VerificationHandler,
	uploadHandler *UploadHandler,
	authMw fiber.Handler,
	adminMw fiber.Handler,
) {
	api := app.Group("/api")

	// Public
	api.Post("/auth/signup", userHandler.Signup)
	api.Post("/auth/login", userHandler.Login)
	api.Get("/skills", userHandler.ListSkills)

	// Authenticated
	authed := api.Group("", authMw)
	authed.Post("/auth/logout", userHandler.Logout)

	authed.Get("/profile", userHandler.GetProfile)
	authed.Post("/profile/update", userHandler.UpdateProfile)
	authed.Post("/profile/change-password", userHandler.ChangePassword)
	authed.Post("/profile/delete", userHandler.DeleteAccount)
	authed.Post("/profile/avatar", uploadHandler.UploadAvatar)
	authed.Get("/profile/skills", userHandler.GetUserSkills)
	authed.Post("/profile/skills", userHandler.SetUserSkills)

	authed.Post("/verification/request", verificationHandler.Submit)
	authed.Get("/verification/status", verificationHandler.GetStatus)

	// Admin review queue
	admin := authed.Group("/verification", adminMw)
	admin.Get("/pending", verificationHandler.ListPending)
	admin.Post("/approve", verificationHandler.Approve)
	admin.Post("/reject", verificationHandler.Reject)
	admin.Post("/revoke", verificationHandler.Revoke)
}
