package alarm

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/logger"
)

// Pusher is the live delivery side of the pipeline. Push is best-effort and
// must never block indefinitely or return transport failures to the caller.
type Pusher interface {
	Push(userID int64, alarm *AlarmDTO)
}

// Pipeline glues the pieces together: resolve the processor by event type,
// compute recipient/content/metadata, persist, then attempt one live push.
// Source operations call Dispatch at the end of their success path; the
// pipeline's own success or failure never propagates back to them.
type Pipeline struct {
	registry *Registry
	store    *Store
	live     Pusher
	log      *zap.Logger
}

// NewPipeline constructs a Pipeline. The pusher may be nil, in which case
// alarms are only persisted.
func NewPipeline(registry *Registry, store *Store, live Pusher) (*Pipeline, error) {
	if registry == nil {
		return nil, errors.New("alarm: pipeline requires a registry")
	}
	if store == nil {
		return nil, errors.New("alarm: pipeline requires a store")
	}
	return &Pipeline{
		registry: registry,
		store:    store,
		live:     live,
		log:      logger.WithModule("alarm"),
	}, nil
}

// Dispatch runs the notification pipeline for a completed source operation.
// It is an independent unit of work: cancellation of the caller's context does
// not abort it, and every failure is logged and swallowed so the source
// operation's caller observes its own success unconditionally.
func (p *Pipeline) Dispatch(ctx context.Context, event Event) {
	created, err := p.process(context.WithoutCancel(ctx), event)
	if err != nil {
		p.logFailure(event, err)
		return
	}

	if p.live != nil {
		p.live.Push(created.UserID, created)
	}
}

func (p *Pipeline) process(ctx context.Context, event Event) (*AlarmDTO, error) {
	processor, err := p.registry.Get(event.Type())
	if err != nil {
		return nil, err
	}

	recipient, err := processor.ResolveRecipient(ctx, event)
	if err != nil {
		return nil, err
	}

	content, err := processor.BuildContent(ctx, event)
	if err != nil {
		return nil, err
	}

	meta, err := processor.BuildMetadata(ctx, event)
	if err != nil {
		return nil, err
	}

	return p.store.Create(ctx, CreateAlarmInput{
		UserID:   recipient,
		Type:     event.Type(),
		Content:  content,
		Metadata: meta,
	})
}

func (p *Pipeline) logFailure(event Event, err error) {
	fields := []zap.Field{
		zap.String("event_type", string(event.Type())),
		zap.Error(err),
	}

	switch {
	case errors.Is(err, ErrRecipientNotResolved):
		p.log.Warn("alarm skipped: recipient not resolved", fields...)
	case errors.Is(err, ErrUnsupportedEvent), errors.Is(err, ErrNoProcessor):
		p.log.Error("alarm pipeline contract violation", fields...)
	default:
		p.log.Error("alarm pipeline failed", fields...)
	}
}
