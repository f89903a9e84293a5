// Package alarm implements the event-triggered notification pipeline: source
// operations dispatch typed events, per-type processors resolve the recipient
// and synthesize content, alarms are persisted append-only, and a best-effort
// live push follows persistence.
package alarm

// EventType tags an event with the processor responsible for it and the
// metadata variant its alarms carry. The set is closed.
type EventType string

const (
	EventComment       EventType = "COMMENT"
	EventDirectMessage EventType = "DIRECT_MESSAGE"
)

// AllEventTypes lists every event type the pipeline must cover. Registry
// validation at startup iterates this set.
func AllEventTypes() []EventType {
	return []EventType{EventComment, EventDirectMessage}
}

// Title returns the fixed human-readable title for alarms of this type.
func (t EventType) Title() string {
	switch t {
	case EventComment:
		return "댓글 알림"
	case EventDirectMessage:
		return "쪽지 알림"
	}
	return string(t)
}

// Event is the result of a completed source operation, handed to the pipeline
// after the operation committed. The union is sealed: the event type statically
// determines the result shape.
type Event interface {
	Type() EventType
	isEvent()
}

// CommentCreated fires after a comment was committed to a post.
type CommentCreated struct {
	CommentID int64
	PostID    int64
	AuthorID  int64 // the commenter, not the post author
}

func (CommentCreated) Type() EventType { return EventComment }
func (CommentCreated) isEvent()        {}

// DirectMessageSent fires after a direct message was committed to a chat room.
type DirectMessageSent struct {
	MessageID int64
	RoomID    int64
	SenderID  int64
}

func (DirectMessageSent) Type() EventType { return EventDirectMessage }
func (DirectMessageSent) isEvent()        {}
