package alarm

import (
	"context"
	"errors"
)

// Pipeline failure classes. Configuration errors are surfaced at startup; the
// rest are contained to the notification side and never reach the operation
// that triggered the event.
var (
	// ErrNoProcessor means no processor is registered for an event type.
	ErrNoProcessor = errors.New("alarm: no processor registered for event type")

	// ErrDuplicateProcessor means two processors claim the same event type.
	ErrDuplicateProcessor = errors.New("alarm: duplicate processor for event type")

	// ErrRecipientNotResolved means an auxiliary lookup needed to find the
	// recipient failed; no alarm is created for the event.
	ErrRecipientNotResolved = errors.New("alarm: recipient could not be resolved")

	// ErrUnsupportedEvent means an event was routed to a processor that does
	// not handle its shape. A programming-contract violation, logged loudly.
	ErrUnsupportedEvent = errors.New("alarm: unsupported event for processor")
)

// Processor is the per-event-type strategy that turns an operation result into
// an alarm: who to notify, what it says, and which deep-link metadata applies.
type Processor interface {
	// EventType declares the event type this processor is responsible for.
	EventType() EventType

	// ResolveRecipient derives the user to notify, usually via an auxiliary
	// lookup. A missing referenced entity yields ErrRecipientNotResolved.
	ResolveRecipient(ctx context.Context, event Event) (int64, error)

	// BuildContent synthesizes the human-readable alarm text; never empty on
	// success.
	BuildContent(ctx context.Context, event Event) (string, error)

	// BuildMetadata synthesizes the metadata variant matching EventType.
	BuildMetadata(ctx context.Context, event Event) (Metadata, error)
}

const (
	titleKeepRunes = 17
	titleMaxRunes  = 20
)

// truncateTitle shortens post titles for alarm content: titles longer than 20
// characters keep the first 17 and gain an ellipsis. Counted in runes, not
// bytes, since titles are predominantly Hangul.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= titleMaxRunes {
		return title
	}
	return string(runes[:titleKeepRunes]) + "..."
}
