package job

import (
	"context"
	"errors"
	"testing"

	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubLucky struct {
	audit service.LuckyAudit
	err   error
}

func (s stubLucky) Next(context.Context) string                        { return "001" }
func (s stubLucky) Sync(context.Context, int64, string)                {}
func (s stubLucky) Verify(context.Context) (service.LuckyAudit, error) { return s.audit, s.err }
func (s stubLucky) Backfill(context.Context, bool) ([]service.LuckyAssignment, error) {
	return nil, nil
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })
	return logs
}

func TestAuditLogsHealthy(t *testing.T) {
	logs := observe(t)
	job := NewLuckyAuditJob(stubLucky{audit: service.LuckyAudit{Total: 3, Assigned: 3}})

	audit := job.Audit(context.Background())
	assert.True(t, audit.Healthy())
	assert.Equal(t, 1, logs.FilterMessage("lucky number audit passed").Len())
}

func TestAuditWarnsOnGaps(t *testing.T) {
	logs := observe(t)
	job := NewLuckyAuditJob(stubLucky{audit: service.LuckyAudit{Total: 3, Assigned: 2, Missing: 1}})

	job.Audit(context.Background())
	entries := logs.FilterMessage("lucky number audit found gaps").All()
	if assert.Len(t, entries, 1) {
		assert.EqualValues(t, 1, entries[0].ContextMap()["missing"])
	}
}

func TestAuditLogsErrors(t *testing.T) {
	logs := observe(t)
	job := NewLuckyAuditJob(stubLucky{err: errors.New("db down")})

	job.Run()
	assert.Equal(t, 1, logs.FilterMessage("lucky number audit failed").Len())
}
