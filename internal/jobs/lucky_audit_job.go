package job

import (
	"context"
	"time"

	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"go.uber.org/zap"
)

const auditTimeout = time.Minute

// LuckyAuditJob periodically checks that lucky numbers still follow the
// creation order of posts. It only reports; repairs go through the
// luckynumbers command.
type LuckyAuditJob struct {
	lucky service.LuckyNumberService
}

func NewLuckyAuditJob(lucky service.LuckyNumberService) *LuckyAuditJob {
	return &LuckyAuditJob{
		lucky: lucky,
	}
}

func (c *LuckyAuditJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	c.Audit(ctx)
}

func (c *LuckyAuditJob) Audit(ctx context.Context) service.LuckyAudit {
	audit, err := c.lucky.Verify(ctx)
	if err != nil {
		logger.Error("lucky number audit failed", zap.Error(err))
		return audit
	}

	fields := []zap.Field{
		zap.Int("total", audit.Total),
		zap.Int("assigned", audit.Assigned),
		zap.Int("missing", audit.Missing),
		zap.Int("sequence_breaks", len(audit.SequenceBreaks)),
		zap.Int("duplicates", len(audit.Duplicates)),
	}
	if audit.Healthy() {
		logger.Info("lucky number audit passed", fields...)
	} else {
		logger.Warn("lucky number audit found gaps", fields...)
	}
	return audit
}
