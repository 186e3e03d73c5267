// Package writer prints notifications to a terminal stream.
package writer

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/ports"
)

type Notifier struct {
	mu    sync.Mutex
	out   io.Writer
	title *color.Color
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out, title: color.New(color.Bold, color.FgMagenta)}
}

func (n *Notifier) Notify(ctx context.Context, notification domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	line := n.title.Sprint("* " + notification.Title)
	if notification.Body != "" {
		line += " " + notification.Body
	}
	if _, err := fmt.Fprintln(n.out, line); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}
