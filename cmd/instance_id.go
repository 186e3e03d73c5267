package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/guide-cli/internal/domain"
)

// resolveInstanceID accepts a full instance id or a unique prefix of one.
func resolveInstanceID(ctx context.Context, app *app, raw string) (domain.InstanceID, error) {
	requested := strings.TrimSpace(raw)
	if requested == "" {
		return "", fmt.Errorf("module id must not be empty")
	}

	session, err := app.service.Session(ctx)
	if err != nil {
		return "", err
	}

	var matches []domain.InstanceID
	for _, module := range session.Timeline.Modules {
		id := string(module.InstanceID)
		if id == requested {
			return module.InstanceID, nil
		}
		if strings.HasPrefix(id, requested) {
			matches = append(matches, module.InstanceID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		// Unknown ids go to the engine, which reports them.
		return domain.InstanceID(requested), nil
	default:
		return "", fmt.Errorf("module id %q is ambiguous (%d matches)", requested, len(matches))
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
