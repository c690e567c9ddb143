package service

import (
	"context"

	"github.com/maheshrc27/dreamwall/pkg/logger"
	"go.uber.org/zap"
)

// MediaCleaner removes stored objects that no post references any more.
// Implementations must not fail the caller's request.
type MediaCleaner interface {
	Schedule(ctx context.Context, publicIDs []string)
}

type inlineCleaner struct {
	store ObjectStore
}

// NewInlineCleaner deletes objects synchronously. Used when no queue is
// configured.
func NewInlineCleaner(store ObjectStore) MediaCleaner {
	return &inlineCleaner{store: store}
}

func (c *inlineCleaner) Schedule(ctx context.Context, publicIDs []string) {
	for _, id := range publicIDs {
		if err := c.store.Delete(ctx, id); err != nil {
			logger.Warn("delete orphaned image", zap.String("public_id", id), zap.Error(err))
		}
	}
}
