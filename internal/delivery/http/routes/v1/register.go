package v1

import (
	"gigboard/internal/config"
	"gigboard/internal/database"
	"gigboard/internal/delivery/http/handler"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/infrastructure/cache"
	"gigboard/internal/pkg/jwt"
	"gigboard/internal/repository"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, redisCache *cache.Redis) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)

	signupUC := usecase.NewSignupUsecase(userRepo, jwtSvc, redisCache)
	profileUC := usecase.NewProfileUsecase(userRepo, skillRepo, redisCache)
	freelancerUC := usecase.NewFreelancerListUsecase(userRepo, redisCache)
	skillUC := usecase.NewSkillUsecase(skillRepo)

	signupHandler := handler.NewSignupHandler(signupUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	freelancerHandler := handler.NewFreelancerHandler(freelancerUC)
	skillHandler := handler.NewSkillHandler(skillUC)

	authGroup := r.Group("/auth")
	signupHandler.RegisterRoutes(authGroup)

	profileHandler.RegisterPublicRoutes(r)
	freelancerHandler.RegisterRoutes(r)
	skillHandler.RegisterRoutes(r)

	protected := r.Group("", authMw.Middleware())
	profileHandler.RegisterProtectedRoutes(protected)
}
