package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
)

// SnifferRegistry dispatches sample files to format sniffers by
// file extension. Registration happens at startup; lookups are
// safe for concurrent use.
type SnifferRegistry struct {
	mu    sync.RWMutex
	byExt map[string]driven.Sniffer
}

// NewSnifferRegistry creates an empty sniffer registry.
func NewSnifferRegistry() *SnifferRegistry {
	return &SnifferRegistry{
		byExt: make(map[string]driven.Sniffer),
	}
}

// Register adds a sniffer for each extension it reports.
// Later registrations win so callers can override defaults.
func (r *SnifferRegistry) Register(sniffer driven.Sniffer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range sniffer.Extensions() {
		r.byExt[normalizeExt(ext)] = sniffer
	}
}

// ForFile returns the sniffer responsible for the given file name.
// Returns domain.ErrUnsupportedFormat when no sniffer claims the
// extension.
func (r *SnifferRegistry) ForFile(fileName string) (driven.Sniffer, error) {
	ext := normalizeExt(filepath.Ext(fileName))

	r.mu.RLock()
	defer r.mu.RUnlock()

	sniffer, ok := r.byExt[ext]
	if !ok {
		if ext == "" {
			return nil, fmt.Errorf("%w: %q has no extension", domain.ErrUnsupportedFormat, fileName)
		}
		return nil, fmt.Errorf("%w: .%s", domain.ErrUnsupportedFormat, ext)
	}
	return sniffer, nil
}

// Sniff dispatches the file to the matching sniffer.
func (r *SnifferRegistry) Sniff(ctx context.Context, file driven.SampleFile) (*domain.SchemaDocument, error) {
	sniffer, err := r.ForFile(file.Name)
	if err != nil {
		return nil, err
	}
	return sniffer.Sniff(ctx, file)
}

// Extensions returns the sorted list of registered extensions.
func (r *SnifferRegistry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
