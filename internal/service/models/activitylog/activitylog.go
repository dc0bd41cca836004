package activitylog

import "time"

// Entry records an admin-initiated mutation for the audit trail. Writes are
// best-effort; a failed insert is logged and never fails the operation it
// describes.
type Entry struct {
	ID         int64     `json:"id"`
	AdminID    int64     `json:"adminId"`
	AdminName  string    `json:"adminName"`
	Action     string    `json:"action"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}
