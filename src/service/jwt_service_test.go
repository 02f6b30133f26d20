package service_test

import (
	"testing"
	"time"

	"taskman-app/src/config"
	"taskman-app/src/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret-key-for-testing",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
	}
}

func TestJWTService_GenerateAndValidateAccessToken(t *testing.T) {
	jwtService := service.NewJWTService(testConfig())

	tests := []struct {
		name   string
		userID string
	}{
		{
			name:   "有効なユーザーID",
			userID: uuid.NewString(),
		},
		{
			name:   "別のユーザーID",
			userID: uuid.NewString(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// アクセストークンを生成
			token, err := jwtService.GenerateAccessToken(tt.userID)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			// 生成されたトークンを検証
			userID, err := jwtService.ValidateAccessToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, userID)
		})
	}
}

func TestJWTService_GenerateAndValidateRefreshToken(t *testing.T) {
	jwtService := service.NewJWTService(testConfig())
	userID := uuid.NewString()

	token, err := jwtService.GenerateRefreshToken(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.Type)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	jwtService := service.NewJWTService(testConfig())
	userID := uuid.NewString()

	accessToken, err := jwtService.GenerateAccessToken(userID)
	require.NoError(t, err)
	refreshToken, err := jwtService.GenerateRefreshToken(userID)
	require.NoError(t, err)

	// リフレッシュトークンをアクセストークンとして使えない
	_, err = jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)

	// アクセストークンをリフレッシュトークンとして使えない
	_, err = jwtService.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	jwtService := service.NewJWTService(testConfig())

	token, err := jwtService.GenerateAccessToken(uuid.NewString())
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(token + "x")
	assert.Error(t, err)

	// 別の秘密鍵で署名されたトークンは拒否される
	other := service.NewJWTService(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "another-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
	})
	otherToken, err := other.GenerateAccessToken(uuid.NewString())
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(otherToken)
	assert.Error(t, err)
}
