package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked:"

// SessionService handles console session operations
type SessionService struct{}

// NewSessionService creates a new session service
func NewSessionService() *SessionService {
	return &SessionService{}
}

// CreateSession records a freshly issued token
func (s *SessionService) CreateSession(
	ctx context.Context,
	userID uuid.UUID,
	token string,
	expiresAt time.Time,
	ipAddress string,
	userAgent string,
) (*models.UserSession, error) {
	session := &models.UserSession{
		UserID:         userID,
		TokenHash:      HashToken(token),
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		Device:         utils.DescribeUserAgent(userAgent),
		LastActivityAt: time.Now(),
		ExpiresAt:      expiresAt,
		IsActive:       true,
	}

	if err := config.ConsoleGorm.WithContext(ctx).Create(session).Error; err != nil {
		log.Printf("[session] failed to create session: %v", err)
		return nil, err
	}

	log.Printf("[session] created session %s for user %s", session.ID, userID)
	return session, nil
}

// UpdateSessionActivity updates the last activity timestamp for a session
func (s *SessionService) UpdateSessionActivity(ctx context.Context, tokenHash string) error {
	if err := config.ConsoleGorm.WithContext(ctx).
		Model(&models.UserSession{}).
		Where("token_hash = ? AND is_active = ?", tokenHash, true).
		Update("last_activity_at", time.Now()).Error; err != nil {
		log.Printf("[session] failed to update session activity: %v", err)
		return err
	}
	return nil
}

// DeactivateSession marks the session behind token inactive and deny-lists
// the token until it would have expired anyway
func (s *SessionService) DeactivateSession(ctx context.Context, token string, expiresAt time.Time) error {
	tokenHash := HashToken(token)

	if err := config.ConsoleGorm.WithContext(ctx).
		Model(&models.UserSession{}).
		Where("token_hash = ? AND is_active = ?", tokenHash, true).
		Update("is_active", false).Error; err != nil {
		log.Printf("[session] failed to deactivate session: %v", err)
		return err
	}

	if err := s.RevokeToken(ctx, tokenHash, time.Until(expiresAt)); err != nil {
		log.Printf("[session] failed to revoke token: %v", err)
		return err
	}

	log.Printf("[session] deactivated session %s", tokenHash[:12])
	return nil
}

// DeactivateAllForUser ends every session of a user (account deletion, password change)
func (s *SessionService) DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error {
	var sessions []models.UserSession
	if err := config.ConsoleGorm.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&sessions).Error; err != nil {
		return err
	}

	for _, session := range sessions {
		if err := s.RevokeToken(ctx, session.TokenHash, time.Until(session.ExpiresAt)); err != nil {
			log.Printf("[session] failed to revoke token for user %s: %v", userID, err)
		}
	}

	return config.ConsoleGorm.WithContext(ctx).
		Model(&models.UserSession{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
}

// RevokeToken puts a token hash on the Redis deny-list for ttl
func (s *SessionService) RevokeToken(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if config.RedisClient == nil || ttl <= 0 {
		return nil
	}
	return config.RedisClient.Set(ctx, revokedTokenPrefix+tokenHash, 1, ttl).Err()
}

// IsTokenRevoked reports whether a token hash was deny-listed by logout
func (s *SessionService) IsTokenRevoked(ctx context.Context, tokenHash string) (bool, error) {
	if config.RedisClient == nil {
		return false, nil
	}
	err := config.RedisClient.Get(ctx, revokedTokenPrefix+tokenHash).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetActiveSessionsByUser gets all active sessions for a user
func (s *SessionService) GetActiveSessionsByUser(ctx context.Context, userID uuid.UUID) ([]models.UserSession, error) {
	var sessions []models.UserSession
	if err := config.ConsoleGorm.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, time.Now()).
		Order("last_activity_at DESC").
		Find(&sessions).Error; err != nil {
		log.Printf("[session] failed to get active sessions: %v", err)
		return nil, err
	}
	return sessions, nil
}

// CleanupExpiredSessions removes expired sessions (run periodically)
func (s *SessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	result := config.ConsoleGorm.WithContext(ctx).
		Where("expires_at < ? OR (is_active = ? AND last_activity_at < ?)",
			time.Now(),
			false,
			time.Now().Add(-7*24*time.Hour),
		).
		Delete(&models.UserSession{})

	if result.Error != nil {
		log.Printf("[session] failed to cleanup expired sessions: %v", result.Error)
		return 0, result.Error
	}

	log.Printf("[session] cleaned up %d expired sessions", result.RowsAffected)
	return result.RowsAffected, nil
}

// RunSessionJanitor cleans up expired sessions every interval until ctx is done
func (s *SessionService) RunSessionJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupCtx, cancel := config.WithTimeout()
			_, _ = s.CleanupExpiredSessions(cleanupCtx)
			cancel()
		}
	}
}

var sessionService *SessionService

// GetSessionService returns the global session service instance
func GetSessionService() *SessionService {
	if sessionService == nil {
		sessionService = NewSessionService()
	}
	return sessionService
}
