package matching

import "go.uber.org/zap"

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is a transient operator-facing message. Server-reported
// failure text passes through verbatim; transport failures get a generic
// fallback.
type Notification struct {
	Kind    NotificationKind
	Message string
}

type Notifier interface {
	Notify(notification Notification)
}

type zapNotifier struct {
	logger *zap.Logger
}

func NewZapNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapNotifier{logger: logger}
}

func (n *zapNotifier) Notify(notification Notification) {
	switch notification.Kind {
	case NotifyError:
		n.logger.Warn("workflow notification", zap.String("message", notification.Message))
	default:
		n.logger.Info("workflow notification", zap.String("message", notification.Message))
	}
}
