package worker

import (
	"github.com/spec-kit/car-marketplace/internal/service"
)

// StartNotificationWorker registers the notification handlers with the
// dispatcher so events published by the services are forwarded.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
