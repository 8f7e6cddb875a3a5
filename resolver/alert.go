package resolver

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event describes a degradation incident worth operator attention.
type Event struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Alerter is the operational alerting collaborator. Implementations deliver
// events to a paging or incident channel; delivery is best-effort and must
// not block resolution.
type Alerter interface {
	// TiersExhausted reports that every persistence tier failed for a
	// tenant and the emergency directive was served.
	TiersExhausted(ctx context.Context, ev Event)
}

// newEvent builds an alert event with a fresh ID.
func newEvent(tenantID, reason string) Event {
	return Event{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Reason:     reason,
		OccurredAt: time.Now(),
	}
}
