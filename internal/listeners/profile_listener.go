package listeners

import (
	"context"
	"time"

	"MindTrace/internal/models"
	"MindTrace/pkg/cache"
	"MindTrace/pkg/logger"
	"MindTrace/pkg/util"

	"go.uber.org/zap"
)

// InitProfileListeners keeps the cached profile in step with saves made
// anywhere in the app. This replaces the old broadcast-a-global-flag
// approach with an explicit subscription.
func InitProfileListeners(store cache.Cache) {
	util.Sig().Connect(models.SigProfileUpdated, func(sender any, params ...any) {
		if len(params) < 1 {
			return
		}
		p, ok := params[0].(*models.Profile)
		if !ok || store == nil {
			return
		}
		if err := store.Set(context.Background(), cache.KeyProfile, *p, 10*time.Minute); err != nil {
			logger.Warn("profile cache update failed", zap.Error(err))
			return
		}
		logger.Debug("profile cache refreshed", zap.String("email", p.Email))
	})
}
