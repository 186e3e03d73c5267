// Package desktop sends notifications through the freedesktop notify-send
// command.
package desktop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/ports"
)

const appName = "guide"

var ErrUnavailable = errors.New("notify-send command unavailable")

type runFunc func(ctx context.Context, args ...string) (stderr string, err error)

type Notifier struct {
	run runFunc
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier() *Notifier {
	return &Notifier{run: runNotifySend}
}

func (n *Notifier) Notify(ctx context.Context, notification domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	args := []string{"--app-name=" + appName, notification.Title}
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	stderr, err := n.run(ctx, args...)
	if err != nil {
		return formatError(notification.Title, err, stderr)
	}

	return nil
}

func runNotifySend(ctx context.Context, args ...string) (string, error) {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrUnavailable
		}
		return "", fmt.Errorf("locate notify-send command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}

func formatError(title string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("notify-send %q: %w", title, err)
	}

	return fmt.Errorf("notify-send %q: %w: %s", title, err, stderr)
}
