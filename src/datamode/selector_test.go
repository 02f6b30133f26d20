package datamode_test

import (
	"io"
	"path/filepath"
	"testing"

	"taskman-app/src/datamode"
	"taskman-app/src/store/localdb"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestSelector(t *testing.T) *datamode.Selector {
	t.Helper()
	local, err := localdb.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })
	return datamode.NewSelector(local, nil, testLogger())
}

func TestSelector_StartsInLocalMode(t *testing.T) {
	s := newTestSelector(t)

	assert.Equal(t, datamode.ModeLocal, s.Mode())
	assert.Empty(t, s.UserID())
	assert.NotNil(t, s.Backend())
}

func TestSelector_LoginWithoutCloudStaysLocal(t *testing.T) {
	s := newTestSelector(t)

	// クラウドストア未設定の場合はローカルのまま
	s.OnLogin(uuid.NewString())

	assert.Equal(t, datamode.ModeLocal, s.Mode())
	assert.NotNil(t, s.Backend())
}

func TestSelector_LogoutReturnsToLocal(t *testing.T) {
	s := newTestSelector(t)

	s.OnLogin(uuid.NewString())
	s.OnLogout()

	assert.Equal(t, datamode.ModeLocal, s.Mode())
	assert.Empty(t, s.UserID())
}
