package api

import (
	"github.com/SilverSkills/user_service/config"
	"github.com/SilverSkills/user_service/infra/cache"
	"github.com/SilverSkills/user_service/infra/queue"
	"github.com/SilverSkills/user_service/internal/api/rest/handlers"
	"github.com/SilverSkills/user_service/internal/api/rest/middleware"
	"github.com/SilverSkills/user_service/internal/domain"
	"github.com/SilverSkills/user_service/internal/helper"
	"github.com/SilverSkills/user_service/internal/repository"
	"github.com/SilverSkills/user_service/internal/services"
	"github.com/SilverSkills/user_service/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection error")
	}
	log.Info().Msg("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260415

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatal().Err(err).Msg("migration lock error")
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Skill{},
		&domain.UserSkill{},
		&domain.VerificationRequest{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration error")
	}
	log.Info().Msg("migration successful")

	seedSkills(db)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis init error")
	}

	cld, err := cloudinary.New()
	if err != nil {
		log.Fatal().Err(err).Msg("cloudinary init error")
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	authHelper := helper.SetupAuth(cfg.SessionSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, skillRepo, authHelper, kafkaProducer)
	verificationSvc := services.NewVerificationService(verificationRepo, userRepo, auditRepo, kafkaProducer)

	// ---------- Handlers ----------
	userHandler := handlers.NewUserHandler(userSvc, authHelper, redisClient)
	verificationHandler := handlers.NewVerificationHandler(verificationSvc)
	uploadHandler := handlers.NewUploadHandler(userSvc, up)

	handlers.SetupRoutes(
		app,
		userHandler,
		verificationHandler,
		uploadHandler,
		middleware.AuthMiddleware(authHelper, redisClient),
		middleware.AdminOnly(userSvc),
	)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	log.Info().Str("addr", cfg.ServerPort).Msg("listening")
	if err := app.Listen(cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

var defaultSkills = []string{
	"Email & Messaging",
	"Video Calls",
	"Online Safety",
	"Document Editing",
	"Spreadsheets",
	"Presentation Tools",
	"Smartphone Basics",
	"Tablet Basics",
	"Social Media",
	"Online Banking",
}

func seedSkills(db *gorm.DB) {
	for _, name := range defaultSkills {
		var s domain.Skill
		err := db.Where("name = ?", name).First(&s).Error
		if err == gorm.ErrRecordNotFound {
			_ = db.Create(&domain.Skill{Name: name}).Error
		}
	}
}
