package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sjperalta/lumina-api/internal/kvstore"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/pkg/logger"
)

// SessionRepository persists the signed-in user under the user key
type SessionRepository interface {
	Current(ctx context.Context) (*models.SessionUser, bool, error)
	Save(ctx context.Context, user models.SessionUser) error
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	store kvstore.Store
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(store kvstore.Store) SessionRepository {
	return &sessionRepository{store: store}
}

// Current returns no user when the key is absent or does not parse
func (r *sessionRepository) Current(ctx context.Context) (*models.SessionUser, bool, error) {
	data, found, err := r.store.Get(ctx, models.SessionKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	var user models.SessionUser
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		logger.Log.WarnContext(ctx, "stored session is malformed, ignoring", "error", err)
		return nil, false, nil
	}
	return &user, true, nil
}

func (r *sessionRepository) Save(ctx context.Context, user models.SessionUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.store.Set(ctx, models.SessionKey, data)
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, models.SessionKey)
}
