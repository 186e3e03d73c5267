package chain

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/guide-cli/internal/adapters/notify/desktop"
	"github.com/bnema/guide-cli/internal/adapters/notify/writer"
	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/ports"
)

type Notifier struct {
	primary  ports.Notifier
	fallback ports.Notifier
}

var _ ports.Notifier = (*Notifier)(nil)

var (
	errNilPrimaryNotifier  = errors.New("primary notifier is nil")
	errNilFallbackNotifier = errors.New("fallback notifier is nil")
)

func NewNotifierChecked(primary ports.Notifier, fallback ports.Notifier) (*Notifier, error) {
	if primary == nil {
		return nil, errNilPrimaryNotifier
	}
	if fallback == nil {
		return nil, errNilFallbackNotifier
	}

	return &Notifier{primary: primary, fallback: fallback}, nil
}

// NewDesktopFirstWithWriterFallback prints to out whenever the desktop
// notification cannot be shown.
func NewDesktopFirstWithWriterFallback(out io.Writer) (*Notifier, error) {
	return NewNotifierChecked(desktop.NewNotifier(), writer.NewNotifier(out))
}

func (n *Notifier) Notify(ctx context.Context, notification domain.Notification) error {
	err := n.primary.Notify(ctx, notification)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := n.fallback.Notify(ctx, notification)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary notifier failed: %w; fallback notifier failed: %w", err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
