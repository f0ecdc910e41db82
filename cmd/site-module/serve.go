package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/api/handlers"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/config"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/keycloak"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/server"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/service"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Конфигурация и логирование
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("Site Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("backend", cfg.StoreBackend),
	)

	if os.Getenv("SM_DEPHEALTH_GROUP") == "" {
		logger.Warn("SM_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 2. Миграции и хранилище записей
	if err := migrateBackend(cfg, logger); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	be, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer be.Close()

	// 3. Хранилище вложений
	files, err := attachment.New(cfg.UploadDir)
	if err != nil {
		return err
	}
	logger.Info("Хранилище вложений готово", slog.String("root", files.Root()))

	// 4. Keycloak (опционально). Без URL удаление в IdP не выполняется.
	var (
		idp       service.IdentityProvider
		kcChecker handlers.ReadinessChecker
		realmURL  string
	)
	if cfg.KeycloakURL != "" {
		kc := keycloak.New(
			cfg.KeycloakURL,
			cfg.KeycloakRealm,
			cfg.KeycloakClientID,
			cfg.KeycloakClientSecret,
			nil,
			logger,
		)
		idp = kc
		kcChecker = kc
		realmURL = strings.TrimRight(cfg.KeycloakURL, "/") + "/realms/" + cfg.KeycloakRealm
		logger.Info("Keycloak клиент создан",
			slog.String("url", cfg.KeycloakURL),
			slog.String("realm", cfg.KeycloakRealm),
		)
	} else {
		logger.Info("SM_KEYCLOAK_URL не задан, удаление пользователей в Identity Provider отключено")
	}

	// 5. Схемы и сервисы
	userSchema := model.UserSchema(cfg.MaxUploadSize)
	logoSchema := model.LogoSchema(cfg.MaxUploadSize)
	settingsSchema := model.SiteSettingsSchema()
	subscriberSchema := model.SubscriberSchema()

	engine := service.NewEngine(be.store, files, logger)
	usersSvc := service.NewUserService(engine, userSchema, idp, logger)
	logoSvc := service.NewLogoService(engine, logoSchema, logger)
	settingsSvc := service.NewSiteSettingsService(engine, settingsSchema, cfg.SettingsCacheTTL, logger)
	subscribersSvc := service.NewSubscriberService(engine, subscriberSchema, logger)

	// 6. Фоновый GC осиротевших вложений
	if cfg.OrphanGCInterval > 0 {
		gc := service.NewOrphanGCService(
			be.store, files,
			[]*model.Schema{userSchema, logoSchema},
			cfg.OrphanGCInterval, cfg.OrphanGCMinAge,
			logger,
		)
		gc.Start(ctx)
		defer gc.Stop()
	}

	// 7. topologymetrics — мониторинг зависимостей (PostgreSQL + Keycloak)
	targets := service.DephealthTargets{KeycloakRealmURL: realmURL}
	if be.pgDB != nil {
		targets.DB = be.pgDB
		targets.PgConnURL = cfg.DatabaseURL()
	}
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"site-module",
		cfg.DephealthGroup,
		targets,
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
			defer dephealthSvc.Stop()
		}
	}

	// 8. HTTP-сервер
	apiHandler := handlers.NewAPIHandler(
		handlers.NewHealthHandler(be.checker, kcChecker),
		usersSvc,
		logoSvc,
		settingsSvc,
		subscribersSvc,
		files,
		handlers.Options{
			MaxUploadSize: cfg.MaxUploadSize,
			Production:    cfg.IsProduction(),
			APIPrefix:     cfg.APIPrefix,
		},
		logger,
	)

	srv := server.New(cfg, logger, apiHandler)
	if err := srv.Run(ctx); err != nil {
		return err
	}

	logger.Info("Site Module остановлен")
	return nil
}
