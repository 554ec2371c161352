package domain

import "fmt"

type NotificationKind string

const (
	NotificationHighActivity  NotificationKind = "high_activity"
	NotificationMemoryCleanup NotificationKind = "memory_cleanup"
)

const (
	// HighActivityOps is the daily turn count that makes a session busy.
	HighActivityOps        = 50
	highActivitySyncMinAgo = 10
)

type NotificationInput struct {
	Ops              int
	MinutesSinceSync int64
	Health           MemoryHealth
}

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

type notificationRule struct {
	kind    NotificationKind
	applies func(NotificationInput) bool
	message func(NotificationInput) string
}

// notificationRules is evaluated top-down; the first match is the only
// notification shown for a turn.
var notificationRules = []notificationRule{
	{
		kind: NotificationHighActivity,
		applies: func(in NotificationInput) bool {
			return in.MinutesSinceSync >= highActivitySyncMinAgo && in.Ops >= HighActivityOps
		},
		message: func(in NotificationInput) string {
			return fmt.Sprintf("💡 🔄 High activity session (%d ops, %dm since sync). Consider: /memory-sync.", in.Ops, in.MinutesSinceSync)
		},
	},
	{
		kind: NotificationMemoryCleanup,
		applies: func(in NotificationInput) bool {
			return in.Health.CleanupRecommended()
		},
		message: func(in NotificationInput) string {
			return fmt.Sprintf("💡 🧹 Memory cleanup recommended (%d session updates). Run /memory-cleanup.", in.Health.SessionUpdates)
		},
	},
}

func SelectNotification(in NotificationInput) (Notification, bool) {
	for _, rule := range notificationRules {
		if rule.applies(in) {
			return Notification{Kind: rule.kind, Message: rule.message(in)}, true
		}
	}
	return Notification{}, false
}
