package csvfile

import (
	"context"
	"strings"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
)

// Ensure Sniffer implements the interface.
var _ driven.Sniffer = (*Sniffer)(nil)

// Sniffer handles CSV samples. The first line supplies field names, the
// second line (if present) supplies one positional sample value per
// name. CSV samples are flat, so the result is header-only; any
// header/lines split is a later, assistant-driven decision.
type Sniffer struct{}

// New creates a new CSV sniffer.
func New() *Sniffer {
	return &Sniffer{}
}

// Extensions returns the file extensions this sniffer handles.
func (s *Sniffer) Extensions() []string {
	return []string{"csv"}
}

// Sniff derives a header-only schema document from the sample.
// Splitting is a plain comma split, matching how the samples are
// produced; no quoting rules, no type inference. Fewer sample values
// than headers is not an error - the extra fields get empty samples.
func (s *Sniffer) Sniff(_ context.Context, file driven.SampleFile) (*domain.SchemaDocument, error) {
	lines := strings.Split(file.Content, "\n")

	names := strings.Split(lines[0], ",")
	var samples []string
	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		samples = strings.Split(lines[1], ",")
	}

	header := make(map[string]domain.FieldDescriptor, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sample := ""
		if i < len(samples) {
			sample = strings.TrimSpace(samples[i])
		}
		header[name] = domain.FieldDescriptor{
			Type:   domain.FieldTypeString,
			Sample: sample,
		}
	}

	return &domain.SchemaDocument{Header: header}, nil
}
