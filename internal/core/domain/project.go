package domain

import "time"

// Status is the project-wide publication state.
type Status string

// Available statuses.
const (
	// StatusDraft marks a project whose artifacts are still editable.
	StatusDraft Status = "Draft"

	// StatusPublished marks a project with a published schema or
	// transformation; published artifacts are read-only.
	StatusPublished Status = "Published"
)

// IsValid returns true if the status is recognised.
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// Platform identifies the integration platform a project targets. The
// three first-class platforms each have their own transformation-logic
// dialect; anything else exports as plain text.
type Platform string

// First-class target platforms.
const (
	PlatformMuleSoft Platform = "MuleSoft"
	PlatformBoomi    Platform = "Boomi"
	PlatformDextrHub Platform = "DextrHub"
)

// ExportExtension returns the file extension for the platform's
// transformation-logic artifact.
func (p Platform) ExportExtension() string {
	switch p {
	case PlatformMuleSoft:
		return "dwl"
	case PlatformBoomi:
		return "xslt"
	case PlatformDextrHub:
		return "json"
	default:
		return "txt"
	}
}

// String returns the string representation.
func (p Platform) String() string {
	return string(p)
}

// Phases tracks the four lifecycle milestones of a project. Flags only
// regress through explicit transitions: re-drafting a published mapping
// clears Exported while keeping Mapped.
type Phases struct {
	// Target is set once a target schema has been saved.
	Target bool `json:"t"`

	// Source is set once source fields have been analysed and saved.
	Source bool `json:"s"`

	// Mapped is set once a mapping draft exists.
	Mapped bool `json:"m"`

	// Exported is set once the transformation has been published.
	Exported bool `json:"e"`
}

// Artifacts holds everything a project has produced so far.
type Artifacts struct {
	// Schema is the target schema.
	Schema *SchemaDocument `json:"schema,omitempty"`

	// SchemaText is the raw schema text when the schema was last edited
	// by hand. Empty when the schema came straight from discovery.
	SchemaText string `json:"schema_text,omitempty"`

	// SchemaValid tracks whether SchemaText parses as JSON. Invalid text
	// stays editable but gates progression to mapping. Meaningful only
	// when SchemaText is non-empty.
	SchemaValid bool `json:"schema_valid,omitempty"`

	// SourceFields is the analysed source-field document.
	SourceFields *SchemaDocument `json:"source_fields,omitempty"`

	// Mappings is the reconciled source-to-target link set.
	Mappings MappingSet `json:"mappings,omitempty"`

	// Prompt is the natural-language transformation rules supplied by
	// the user, forwarded to suggestion and code generation.
	Prompt string `json:"prompt,omitempty"`

	// GeneratedCode is the platform-specific transformation logic.
	GeneratedCode string `json:"generated_code,omitempty"`
}

// SchemaReady reports whether the target schema can be consumed by later
// phases: a schema exists and any manual edit of it parsed cleanly.
func (a Artifacts) SchemaReady() bool {
	if a.Schema == nil || a.Schema.IsEmpty() {
		return false
	}
	return a.SchemaText == "" || a.SchemaValid
}

// Project is a phase-gated integration project. The registry owns every
// Project value exclusively; updates replace the whole record by ID.
type Project struct {
	// ID is the unique identifier for the project.
	ID string `json:"id"`

	// Name is the human-readable project name.
	Name string `json:"name"`

	// Target is the integration platform this project targets.
	Target Platform `json:"target"`

	// Status gates whether artifacts may still be edited.
	Status Status `json:"status"`

	// Phases tracks lifecycle progress.
	Phases Phases `json:"phases"`

	// Artifacts holds the produced schema, source fields, mappings and code.
	Artifacts Artifacts `json:"artifacts"`

	// CreatedAt is when the project was first saved.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the project was last replaced in the registry.
	UpdatedAt time.Time `json:"updated_at"`
}

// Lifecycle guard predicates. The state machine is enforced here at the
// data layer, not only by whichever surface drives it.

// CanEditSchema reports whether the target schema is still editable.
// A published schema is immutable; a new project is required to change it.
func (p *Project) CanEditSchema() bool {
	return p.Status != StatusPublished
}

// CanEditSource reports whether source fields are still editable.
// Editing source fields after a mapping exists would silently invalidate
// mapping links with no defined reconciliation, so it is disallowed.
func (p *Project) CanEditSource() bool {
	return !p.Phases.Mapped && !p.Phases.Exported
}

// CanEditMappings reports whether mapping links are still editable.
func (p *Project) CanEditMappings() bool {
	return !p.Phases.Exported
}

// CanResuggest reports whether an assistant suggestion merge may replace
// the mapping set. Suggestions must never silently overwrite a published
// transformation.
func (p *Project) CanResuggest() bool {
	return !p.Phases.Exported
}

// CanGenerateCode reports whether export code may be (re)generated.
func (p *Project) CanGenerateCode() bool {
	return p.Phases.Exported
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Artifacts.Schema = p.Artifacts.Schema.Clone()
	clone.Artifacts.SourceFields = p.Artifacts.SourceFields.Clone()
	clone.Artifacts.Mappings = p.Artifacts.Mappings.Clone()
	return &clone
}
