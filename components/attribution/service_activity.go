package attribution

import (
	"context"

	"github.com/goliatone/go-attribution/pkg/activity"
)

// emitActivity publishes an audit event for board mutations. Actor/tenant
// identity rides on the context via ContextWithActivity.
func (s *Service) emitActivity(ctx context.Context, verb, objectType, objectID string, metadata map[string]any) {
	if !s.activity.Enabled() {
		return
	}
	meta := ActivityContextFrom(ctx)
	_ = s.activity.Emit(ctx, activity.Event{
		Verb:       verb,
		ActorID:    meta.ActorID,
		UserID:     meta.UserID,
		TenantID:   meta.TenantID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Metadata:   metadata,
	})
}
