// Package auth wraps sa-token session management for the console.
package auth

import (
	"fmt"
	"time"

	"github.com/click33/sa-token-go/core"
	"github.com/click33/sa-token-go/storage/memory"
	satokenRedis "github.com/click33/sa-token-go/storage/redis"
	"github.com/click33/sa-token-go/stputil"

	"corebo/console/internal/config"
	"corebo/console/internal/logger"
)

var manager *core.Manager

// InitSaToken configures the global token manager. Redis storage is used
// when configured so sessions survive restarts; otherwise tokens live in
// memory.
func InitSaToken(cfg *config.Config) error {
	var storage core.Storage
	var err error

	if cfg.Redis.Host != "" && cfg.Redis.Port > 0 {
		var redisURL string
		if cfg.Redis.Password != "" {
			redisURL = fmt.Sprintf("redis://:%s@%s:%d/%d", cfg.Redis.Password, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
		} else {
			redisURL = fmt.Sprintf("redis://%s:%d/%d", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
		}
		storage, err = satokenRedis.NewStorage(redisURL)
		if err != nil {
			logger.Warn("satoken redis storage unavailable, falling back to memory storage")
			storage = memory.NewStorage()
		}
	} else {
		storage = memory.NewStorage()
	}

	manager = core.NewBuilder().
		Storage(storage).
		TokenName(cfg.SaToken.TokenName).
		Timeout(cfg.SaToken.Timeout).
		ActiveTimeout(cfg.SaToken.ActiveTimeout).
		IsConcurrent(cfg.SaToken.IsConcurrent).
		IsShare(cfg.SaToken.IsShare).
		MaxLoginCount(cfg.SaToken.MaxLoginCount).
		IsLog(cfg.SaToken.IsLog).
		Build()

	stputil.SetManager(manager)
	return nil
}

// Login issues a token for the user id.
func Login(loginId any) (string, error) {
	return stputil.Login(loginId)
}

// Logout ends all sessions for the user id.
func Logout(loginId any, device ...string) error {
	return stputil.Logout(loginId, device...)
}

// LogoutByToken ends the session bound to one token.
func LogoutByToken(tokenValue string) error {
	return stputil.LogoutByToken(tokenValue)
}

// IsLogin reports whether the token is a live session.
func IsLogin(tokenValue string) bool {
	return stputil.IsLogin(tokenValue)
}

// GetLoginId resolves the user id behind a token.
func GetLoginId(tokenValue string) (string, error) {
	return stputil.GetLoginID(tokenValue)
}

// GetTokenValue returns the active token for a user id.
func GetTokenValue(loginId any, device ...string) (string, error) {
	return stputil.GetTokenValue(loginId, device...)
}

// KickOut forces a user offline.
func KickOut(loginId any, device ...string) error {
	return stputil.Kickout(loginId, device...)
}

// Disable blocks a user from signing in for the given number of seconds.
func Disable(loginId any, seconds int64) error {
	return stputil.Disable(loginId, time.Duration(seconds)*time.Second)
}

// GetDisableTime returns the remaining lock seconds for a user.
func GetDisableTime(loginId any) int64 {
	result, _ := stputil.GetDisableTime(loginId)
	return result
}

// IsDisable reports whether the user is blocked.
func IsDisable(loginId any) bool {
	return stputil.IsDisable(loginId)
}

// Untie lifts a disable.
func Untie(loginId any) error {
	return stputil.Untie(loginId)
}