// Package file caches module content on disk so it is available offline
// while a session runs.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/ports"
)

const (
	cacheDirMode  = 0o700
	cacheFileMode = 0o600
	cacheFileExt  = ".md"
	tempDirName   = ".tmp"
)

type Prefetcher struct {
	d       *diskv.Diskv
	root    string
	library ports.ModuleLibrary
	mu      sync.Mutex
}

var _ ports.Prefetcher = (*Prefetcher)(nil)

func NewPrefetcher(root string, library ports.ModuleLibrary) *Prefetcher {
	root = filepath.Clean(root)
	return &Prefetcher{
		d: diskv.New(diskv.Options{
			BasePath:          root,
			TempDir:           filepath.Join(root, tempDirName),
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			PathPerm:          cacheDirMode,
			FilePerm:          cacheFileMode,
		}),
		root:    root,
		library: library,
	}
}

// Precache writes the content of every listed module whose cached copy is
// missing or differs from the library. Failures for one id do not stop the
// others.
func (p *Prefetcher) Precache(ctx context.Context, libraryIDs []string) error {
	var errs []error
	for _, id := range libraryIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.precacheOne(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Prefetcher) precacheOne(id string) error {
	key, err := keyForID(id)
	if err != nil {
		return err
	}

	module, err := p.library.GetModuleByID(key)
	if err != nil {
		return err
	}
	want := []byte(render(module))

	p.mu.Lock()
	defer p.mu.Unlock()

	// A short or stale copy is rewritten; writes land through a temp file and
	// rename, so readers never see a partial entry.
	if have, err := p.d.Read(key); err == nil && bytes.Equal(have, want) {
		return nil
	}
	if err := p.d.Write(key, want); err != nil {
		return fmt.Errorf("write cached module %q: %w", id, err)
	}
	return nil
}

func keyForID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", errors.New("module id is empty")
	}
	if strings.ContainsAny(trimmed, `/\`) || strings.HasPrefix(trimmed, ".") {
		return "", fmt.Errorf("invalid module id %q", id)
	}
	return trimmed, nil
}

func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{FileName: key + cacheFileExt}
}

func pathToKey(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, cacheFileExt)
}

func render(module domain.LibraryModule) string {
	var b strings.Builder
	b.WriteString("# " + module.Title + "\n")
	if module.Description != "" {
		b.WriteString("\n" + module.Description + "\n")
	}
	if module.Content != "" {
		b.WriteString("\n" + module.Content + "\n")
	}
	return b.String()
}
