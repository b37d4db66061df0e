package usecase

import (
	"context"

	"github.com/google/uuid"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/internal/domain/repository"
	"placewatch-service/pkg/logger"
	"placewatch-service/pkg/metrics"
	"placewatch-service/templates"
)

// ChangeNotifier formats detected changes into alerts and hands them to the
// alert sink, one alert per change. Delivery failures are logged and never
// escalated to the caller.
type ChangeNotifier struct {
	alertRepo      repository.AlertRepository
	permissionRepo repository.PermissionRepository
	metrics        *metrics.Metrics
	logger         logger.Logger
}

// NewChangeNotifier creates a new change notifier. metrics may be nil.
func NewChangeNotifier(
	alertRepo repository.AlertRepository,
	permissionRepo repository.PermissionRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *ChangeNotifier {
	return &ChangeNotifier{
		alertRepo:      alertRepo,
		permissionRepo: permissionRepo,
		metrics:        metrics,
		logger:         logger,
	}
}

// Notify dispatches one alert per change for the given record. It is a
// complete no-op unless notification permission is granted; the permission
// check happens before any formatting work.
func (n *ChangeNotifier) Notify(ctx context.Context, changes []entity.Change, placeName, recordID string) {
	if len(changes) == 0 {
		return
	}

	status, err := n.permissionRepo.Status(ctx)
	if err != nil {
		n.logger.Warn("Failed to read notification permission", "error", err)
		return
	}
	if status != entity.PermissionGranted {
		n.logger.Debug("Notifications not permitted, skipping",
			"permission", string(status),
			"recordId", recordID,
			"changes", len(changes))
		return
	}

	for _, change := range changes {
		alert := &entity.Alert{
			ID:    uuid.NewString(),
			Title: templates.FormatTitle(change, placeName),
			Body:  templates.FormatBody(change),
			Payload: map[string]interface{}{
				"recordId": recordID,
			},
		}

		if err := n.alertRepo.Deliver(ctx, alert); err != nil {
			n.logger.Error("Failed to deliver alert",
				"alertId", alert.ID,
				"recordId", recordID,
				"kind", string(change.Kind),
				"error", err)
			continue
		}

		if n.metrics != nil {
			n.metrics.AlertsDelivered.Inc()
		}
		n.logger.Info("Alert delivered",
			"alertId", alert.ID,
			"recordId", recordID,
			"kind", string(change.Kind))
	}
}
