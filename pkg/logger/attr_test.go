package logger_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/kinderkit/pkg/logger"
)

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("nil error is empty", func(t *testing.T) {
		t.Parallel()
		assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	})

	t.Run("domain attrs", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "rule", logger.Rule("class.name.unique").Key)
		assert.Equal(t, "path", logger.Path("ageGroups.0.quota").Key)
		assert.Equal(t, int64(3), logger.Violations(3).Value.Int64())
		assert.Equal(t, "duration", logger.Duration(time.Second).Key)
	})

	t.Run("group", func(t *testing.T) {
		t.Parallel()
		g := logger.Group("call", logger.Entity("plan"), logger.Operation("update"))
		assert.Len(t, g.Value.Group(), 2)
	})
}
