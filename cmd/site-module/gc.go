package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/service"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

var gcMinAge time.Duration

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Release orphaned attachment files once and exit",
	Long: `Walk every attachment slot directory and release files that no record
references and that are older than the minimum age.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		minAge := cfg.OrphanGCMinAge
		if cmd.Flags().Changed("min-age") {
			minAge = gcMinAge
		}

		be, err := openBackend(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer be.Close()

		files, err := attachment.New(cfg.UploadDir)
		if err != nil {
			return err
		}

		gc := service.NewOrphanGCService(
			be.store, files,
			[]*model.Schema{model.UserSchema(cfg.MaxUploadSize), model.LogoSchema(cfg.MaxUploadSize)},
			0, minAge,
			logger,
		)
		result := gc.RunOnce(cmd.Context())

		logger.Info("GC вложений выполнен",
			slog.Int("scanned", result.Scanned),
			slog.Int("deleted", result.DeletedCount),
			slog.Int("errors", result.Errors),
			slog.Duration("duration", result.Duration),
		)
		if result.Errors > 0 {
			return fmt.Errorf("GC завершён с ошибками: %d", result.Errors)
		}
		return nil
	},
}

func init() {
	gcCmd.Flags().DurationVar(&gcMinAge, "min-age", 0, "minimum file age before release (overrides SM_ORPHAN_GC_MIN_AGE)")
	rootCmd.AddCommand(gcCmd)
}
