package queue

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"go.uber.org/zap"
)

const (
	deleteMediaRetries = 5
	deleteMediaTimeout = 2 * time.Minute
)

func NewDeleteMediaTask(payload DeleteMediaPayload) (*asynq.Task, error) {
	taskPayload, err := sonic.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDeleteMedia, taskPayload,
		asynq.MaxRetry(deleteMediaRetries),
		asynq.Timeout(deleteMediaTimeout)), nil
}

func EnqueueDeleteMedia(ctx context.Context, asynqClient *asynq.Client, payload DeleteMediaPayload) error {
	task, err := NewDeleteMediaTask(payload)
	if err != nil {
		return err
	}

	info, err := asynqClient.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	logger.Debug("media deletion queued", zap.String("task_id", info.ID), zap.Int("objects", len(payload.PublicIDs)))
	return nil
}

// Cleaner hands orphaned objects to the worker. When the queue is
// unreachable it deletes them inline instead.
type Cleaner struct {
	client   *asynq.Client
	fallback service.MediaCleaner
}

func NewCleaner(client *asynq.Client, store service.ObjectStore) *Cleaner {
	return &Cleaner{client: client, fallback: service.NewInlineCleaner(store)}
}

func (c *Cleaner) Schedule(ctx context.Context, publicIDs []string) {
	if len(publicIDs) == 0 {
		return
	}
	err := EnqueueDeleteMedia(ctx, c.client, DeleteMediaPayload{PublicIDs: publicIDs})
	if err == nil {
		return
	}
	logger.Warn("enqueue media deletion failed, deleting inline", zap.Error(err))
	c.fallback.Schedule(ctx, publicIDs)
}
