package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wayfinder.log")

	logger, closer, err := New(path, true)
	require.NoError(t, err)
	logger.WithField("token", 7).Debug("scan accepted")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scan accepted")
	assert.Contains(t, string(data), "token=7")
}

func TestNewWithoutPathDiscards(t *testing.T) {
	logger, closer, err := New("", false)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.NoError(t, closer.Close())
}

func TestNewReportsUnopenableFile(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := New(dir, false)
	require.Error(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}
