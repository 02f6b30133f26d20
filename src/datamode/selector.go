package datamode

import (
	"sync"

	"github.com/sirupsen/logrus"

	"taskman-app/src/domain"
	"taskman-app/src/store/clouddb"
)

// Mode selects which backend the repositories target
type Mode string

const (
	ModeLocal Mode = "local"
	ModeCloud Mode = "cloud"
)

// Selector decides the active backend from authentication state.
// プロセス起動時はlocal、認証状態が変わるたびに再評価される。
// ログイン時にローカルデータをクラウドへ移行することはしない。
type Selector struct {
	mu     sync.RWMutex
	mode   Mode
	userID string
	local  domain.Backend
	cloud  *clouddb.DB
	logger *logrus.Logger
}

// NewSelector creates a selector starting in local mode.
// cloud may be nil when no cloud database is configured.
func NewSelector(local domain.Backend, cloud *clouddb.DB, logger *logrus.Logger) *Selector {
	return &Selector{
		mode:   ModeLocal,
		local:  local,
		cloud:  cloud,
		logger: logger,
	}
}

// OnLogin switches to cloud mode for the given user
func (s *Selector) OnLogin(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cloud == nil {
		s.logger.WithField("user_id", userID).Warn("クラウドデータベース未設定のためローカルモードを維持します")
		return
	}

	s.mode = ModeCloud
	s.userID = userID
	s.logger.WithField("user_id", userID).Info("データモードをcloudに切り替えました")
}

// OnLogout reverts to local mode
func (s *Selector) OnLogout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = ModeLocal
	s.userID = ""
	s.logger.Info("データモードをlocalに切り替えました")
}

// Mode returns the current data mode
func (s *Selector) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// UserID returns the authenticated user identifier, empty in local mode
func (s *Selector) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Backend returns the store the repositories should currently target
func (s *Selector) Backend() domain.Backend {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.mode == ModeCloud {
		return s.cloud.ForUser(s.userID)
	}
	return s.local
}
