package core

import (
	"math/rand"
	"strconv"
	"time"
)

// GenerateID produces an opaque collection-unique identifier: the current
// unix-millisecond timestamp in base 36 followed by a random base-36 suffix.
// IDs are generated client-side and never reused.
func GenerateID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strconv.FormatInt(rand.Int63n(1<<48), 36)
	return ts + suffix
}

// ReminderIDFor derives the identifier of the reminder auto-created from a
// maintenance entry's next-due fields. The relation is additionally stored on
// Reminder.SourceMaintenanceID; the derived name is kept for compatibility
// with records written by older versions.
func ReminderIDFor(maintenanceID string) string {
	return maintenanceID + "_reminder"
}
