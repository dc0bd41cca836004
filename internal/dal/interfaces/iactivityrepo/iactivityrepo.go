package iactivityrepo

import (
	"context"

	"github.com/easyorganic/order-svc/internal/service/models/activitylog"
)

// IActivityRepository is the interface for the admin activity log.
type IActivityRepository interface {
	Insert(ctx context.Context, entry activitylog.Entry) error
}
