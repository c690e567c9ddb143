package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"go.uber.org/zap"
)

const deleteConcurrency = 4

func (j *Queue) HandleDeleteMediaTask(ctx context.Context, task *asynq.Task) error {
	var payload DeleteMediaPayload
	if err := sonic.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	return j.DeleteObjects(ctx, payload.PublicIDs)
}

// DeleteObjects removes every object it can and reports the failures
// together so the task is retried.
func (j *Queue) DeleteObjects(ctx context.Context, publicIDs []string) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	semaphore := make(chan struct{}, deleteConcurrency)

	for _, id := range publicIDs {
		if id == "" {
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}
		go func(id string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := j.store.Delete(ctx, id); err != nil {
				logger.Warn("delete media object", zap.String("public_id", id), zap.Error(err))
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", id, err))
				mu.Unlock()
			}
		}(id)
	}

	wg.Wait()
	return errors.Join(errs...)
}
