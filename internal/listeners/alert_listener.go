package listeners

import (
	"MindTrace/internal/models"
	"MindTrace/pkg/logger"
	"MindTrace/pkg/notification"
	"MindTrace/pkg/util"

	"go.uber.org/zap"
)

// InitAlertListeners turns active-slot transitions into user notices.
// Polling failures never reach this path; only applied state changes do.
func InitAlertListeners(notices *notification.Center) {
	util.Sig().Connect(models.SigAlertChanged, func(sender any, params ...any) {
		if len(params) < 2 {
			return
		}
		prev, _ := params[0].(*models.Alert)
		next, _ := params[1].(*models.Alert)

		switch {
		case next == nil && prev != nil:
			logger.Info("alert cleared", zap.Int("id", prev.ID))
			if notices != nil {
				notices.Success("Alert resolved")
			}
		case next != nil && (prev == nil || prev.ID != next.ID):
			logger.Info("alert active",
				zap.Int("id", next.ID),
				zap.Bool("is_test", next.IsTest))
			if notices != nil && next.IsTest {
				notices.Info("Test alert in progress")
			}
		case next != nil && prev != nil && prev.Status != next.Status:
			logger.Info("alert status changed",
				zap.Int("id", next.ID),
				zap.String("from", prev.Status),
				zap.String("to", next.Status))
		}
	})
}
