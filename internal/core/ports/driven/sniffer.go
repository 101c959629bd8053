package driven

import (
	"context"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
)

// SampleFile is one raw sample selected for analysis.
type SampleFile struct {
	// Name is the file name including its extension. The extension
	// selects the sniffer.
	Name string `json:"fileName"`

	// Content is the full file text, already read into memory.
	Content string `json:"content"`
}

// Sniffer converts a raw sample file into the canonical header/lines
// schema shape. Each sniffer handles specific file extensions.
// Sniffing is synchronous, pure and idempotent per file.
type Sniffer interface {
	// Extensions returns the lower-cased file extensions this sniffer
	// handles, without the leading dot.
	Extensions() []string

	// Sniff derives a schema document from the sample. It returns
	// domain.ErrParse (wrapped) for malformed content and never
	// partially applies: on error the result is nil.
	Sniff(ctx context.Context, file SampleFile) (*domain.SchemaDocument, error)
}
