package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harukigames/gamecore/internal/content"
)

// SyncContent loads the designer JSON content (job classes, items, skill
// lines) and syncs it to the database. Hash-based change detection skips
// files that have not changed since the last sync, so boot stays fast when
// content is stable.
func SyncContent(ctx context.Context, contentDir string, repos *Repositories) error {
	slog.Info(LogMsgSyncingContent, "dir", contentDir)

	syncer := content.NewSyncer(content.NewLoader(), repos.JobClass, repos.Item, repos.Skill)
	if err := syncer.SyncAll(ctx, contentDir); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncContent, err)
	}

	slog.Info(LogMsgContentSynced)
	return nil
}
