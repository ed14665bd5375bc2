package i

import (
	"context"

	"github.com/abel-getahun/minefield-api/message"
)

// Notifier delivers an envelope to a set of transport addresses. Delivery
// failures surface as one batch outcome, not per recipient.
type Notifier interface {
	Notify(ctx context.Context, to []string, env message.Envelope) error
}
