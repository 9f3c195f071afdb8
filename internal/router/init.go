package router

import (
	"confsite/internal/application"
	"confsite/internal/container"
	pginfra "confsite/internal/infrastructure/postgres"
	handlers "confsite/internal/interface/http"
	"confsite/internal/router/modules"
)

// InitModules constructs the application services and handlers from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	talkRepo := pginfra.NewTalkRepository(container.GetPGPool())

	profiles := application.NewProfileService(
		userRepo,
		talkRepo,
		container.GetCrypto(),
		container.GetRedis(),
		container.GetES(),
		cfg.ESUsersIndex,
		logger,
	)
	users := application.NewUserService(
		userRepo,
		container.GetCrypto(),
		profiles,
		container.GetGCS(),
		cfg.GCSBucket,
		logger,
	)
	auth := application.NewAuthService(
		userRepo,
		container.GetRedis(),
		container.GetSessions(),
		container.GetRabbitPub(),
		cfg.LoginTokenTTL,
		logger,
	)

	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profiles, users, logger)))
	r.Add(modules.NewUserAPIModule(handlers.NewUserAPIHandler(users, profiles, logger)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(auth, cfg.CookieDomain, cfg.CookieSecure, logger)))
}
