package migrate

import (
	"context"
	"fmt"

	"github.com/mirelabs/chatskins-backend/pkg/config"
	"github.com/mirelabs/chatskins-backend/pkg/db"
	"github.com/mirelabs/chatskins-backend/pkg/db/models"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
)

// MaybeRunDev auto-migrates the schema when the feature flag is on. Intended
// for dev and test environments only; production schemas are managed
// out of band.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	if cfg.App.IsProd() {
		return fmt.Errorf("auto-migrate is not allowed in prod")
	}
	if client == nil {
		return fmt.Errorf("db client required for auto-migrate")
	}

	if err := client.DB().WithContext(ctx).AutoMigrate(
		&models.Wallet{},
		&models.WalletEntry{},
		&models.MembershipRecord{},
		&models.FriendRequest{},
		&models.StoryNote{},
		&models.SignatureEntry{},
		&models.StateDocument{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "dev auto-migration complete")
	}
	return nil
}
