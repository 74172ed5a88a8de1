package sqlite

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_LogsThroughLogrus(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, hook := logtest.NewNullLogger()
	require.NoError(t, Migrate(db, logger))

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, "migrate", entry.Data["component"])
	}

	// a second run has nothing to apply and still reports through the hook
	hook.Reset()
	require.NoError(t, Migrate(db, logger))
	assert.NotEmpty(t, hook.AllEntries())
}
