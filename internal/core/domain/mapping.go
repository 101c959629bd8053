package domain

import (
	"regexp"
	"strings"
)

// Unmapped is the sentinel field reference meaning "no link". It is only
// used transiently while editing; a MappingSet never stores it.
const Unmapped = "Unmapped"

// LinesPrefix namespaces line-item fields in display field references,
// disambiguating them from header fields with the same name.
const LinesPrefix = "Lines / "

// Link is a directed association between one source field and one target
// field, carrying a transformation rule and a confidence score in [0,1].
type Link struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Rule       string  `json:"rule"`
	Confidence float64 `json:"confidence"`
}

// IsRemoval reports whether the link is an un-mapping request:
// either side carries the Unmapped sentinel.
func (l Link) IsRemoval() bool {
	return l.Source == Unmapped || l.Target == Unmapped
}

// fieldRefPrefix matches one leading namespace segment on a field
// reference: HEADER, LINE_ITEMS or Lines, followed by ".", "/" or " / ".
// The prefix rule lives in this one expression so the two schema
// namespaces stay coupled in exactly one place.
var fieldRefPrefix = regexp.MustCompile(`(?i)^(HEADER|LINE_ITEMS|Lines)(\.|\s*/\s*)`)

// NormalizeFieldRef reduces a field reference to its comparable form:
// one leading namespace segment stripped, surrounding whitespace trimmed,
// lower-cased. "Lines / SKU", "LINE_ITEMS.sku" and "sku" all normalize
// to "sku".
func NormalizeFieldRef(ref string) string {
	ref = strings.TrimSpace(ref)
	ref = fieldRefPrefix.ReplaceAllString(ref, "")
	return strings.ToLower(strings.TrimSpace(ref))
}

// SameFieldRef reports whether two references name the same field after
// normalization.
func SameFieldRef(a, b string) bool {
	return NormalizeFieldRef(a) == NormalizeFieldRef(b)
}

// MappingSet is an ordered collection of links between source and target
// fields. Invariant: no two links share a normalized source, and no two
// links share a normalized target - each field participates in at most
// one link. All mutations return a new set; a set is never modified in
// place, so callers can compare old and new to decide whether to persist.
type MappingSet []Link

// SetLink atomically applies a manual edit. Every existing link touching
// the candidate's source or target (by normalized equality) is evicted
// first, which keeps the uniqueness invariant even when the candidate
// steals its source from one link and its target from another. If either
// side is the Unmapped sentinel the edit is a pure removal; otherwise the
// candidate is appended with confidence forced to 1.0, since a manual
// edit is full-confidence by definition.
func (s MappingSet) SetLink(candidate Link) MappingSet {
	result := make(MappingSet, 0, len(s)+1)
	for _, link := range s {
		if SameFieldRef(link.Source, candidate.Source) || SameFieldRef(link.Target, candidate.Target) {
			continue
		}
		result = append(result, link)
	}

	if candidate.IsRemoval() {
		return result
	}

	candidate.Confidence = 1.0
	return append(result, candidate)
}

// LinkTouching finds the link involving the given field on either side,
// matching on normalized equality. Returns a copy.
func (s MappingSet) LinkTouching(fieldRef string) (Link, bool) {
	for _, link := range s {
		if SameFieldRef(link.Source, fieldRef) || SameFieldRef(link.Target, fieldRef) {
			return link, true
		}
	}
	return Link{}, false
}

// ReplaceAll replaces the set wholesale with assistant suggestions.
// Suggestions with a sentinel or blank side are dropped; the backend is
// expected to emit one suggestion per target field but the store's
// invariants must hold regardless, so duplicate sources or targets are
// resolved first-wins.
func ReplaceAll(proposed []Link) MappingSet {
	result := make(MappingSet, 0, len(proposed))
	seenSource := make(map[string]bool, len(proposed))
	seenTarget := make(map[string]bool, len(proposed))
	for _, link := range proposed {
		if link.IsRemoval() || strings.TrimSpace(link.Source) == "" || strings.TrimSpace(link.Target) == "" {
			continue
		}
		src := NormalizeFieldRef(link.Source)
		tgt := NormalizeFieldRef(link.Target)
		if seenSource[src] || seenTarget[tgt] {
			continue
		}
		seenSource[src] = true
		seenTarget[tgt] = true
		result = append(result, link)
	}
	return result
}

// ResolveDisplayRefs maps a link's sides back to the original field
// reference strings from the given source and target field lists. A side
// with no match becomes the Unmapped sentinel. Used to pre-populate the
// edit dialog with the exact technical names rather than normalized ones.
func ResolveDisplayRefs(link Link, sourceRefs, targetRefs []string) Link {
	link.Source = findDisplayRef(sourceRefs, link.Source)
	link.Target = findDisplayRef(targetRefs, link.Target)
	return link
}

func findDisplayRef(refs []string, ref string) string {
	for _, candidate := range refs {
		if SameFieldRef(candidate, ref) {
			return candidate
		}
	}
	return Unmapped
}

// PrefillLink builds the edit-dialog prefill for a clicked field that has
// no existing link: target-side fields get an unmapped source, everything
// else gets an unmapped target.
func PrefillLink(fieldRef string, targetRefs []string) Link {
	isTarget := false
	for _, candidate := range targetRefs {
		if SameFieldRef(candidate, fieldRef) {
			isTarget = true
			break
		}
	}
	if isTarget {
		return Link{Source: Unmapped, Target: fieldRef, Rule: "Manual mapping required."}
	}
	return Link{Source: fieldRef, Target: Unmapped, Rule: "Manual mapping required."}
}

// Validate checks the uniqueness invariant. A well-behaved caller can
// never trip it through SetLink or ReplaceAll; it guards data loaded
// from storage.
func (s MappingSet) Validate() error {
	seenSource := make(map[string]bool, len(s))
	seenTarget := make(map[string]bool, len(s))
	for _, link := range s {
		if link.IsRemoval() {
			return ErrInvalidInput
		}
		src := NormalizeFieldRef(link.Source)
		tgt := NormalizeFieldRef(link.Target)
		if seenSource[src] || seenTarget[tgt] {
			return ErrInvalidInput
		}
		seenSource[src] = true
		seenTarget[tgt] = true
	}
	return nil
}

// Clone returns a copy of the set.
func (s MappingSet) Clone() MappingSet {
	if s == nil {
		return nil
	}
	clone := make(MappingSet, len(s))
	copy(clone, s)
	return clone
}
