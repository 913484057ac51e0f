// Package deck loads, validates, and emits molecular-dynamics input decks.
//
// A deck is a single YAML document whose top-level keys are simulation
// directives (units, boundary, pair_style, fix, run, ...). Document order is
// significant: it maps one-to-one onto the command order the external MD
// engine receives. A deck is immutable once loaded; validation either
// produces a ValidatedDeck or the full list of violations found.
package deck

// Deck holds one parsed input document as an ordered directive sequence.
type Deck struct {
	// Source identifies where the deck came from (file path, or "<memory>"
	// for decks loaded from a byte slice). Used in diagnostics only.
	Source string

	// Directives in document order.
	Directives []Directive
}

// Directive is one top-level deck entry. Kind is the canonical directive
// name with any numeric suffix stripped from the document key ("fix2" ->
// "fix"); suffixes keep repeated directives unique within a YAML mapping.
// Key and Line preserve the original document key and its source line for
// diagnostics.
//
// Simple directives keep their raw value tokens in Tokens so emission
// reproduces the document text byte for byte. Structured directives carry
// exactly one of the typed payload pointers instead.
type Directive struct {
	Kind string
	Key  string
	Line int

	Tokens []string

	Fix      *FixSpec
	Dump     *DumpSpec
	Thermo   *ThermoStyleSpec
	Timestep *TimestepSpec
	Velocity *VelocitySpec
	Restart  *RestartSpec
}

// FixSpec describes a fix directive. ID is the fix handle later referenced
// by a matching unfix directive.
type FixSpec struct {
	ID    string
	Group string
	Style string
	Args  []string
}

// DumpSpec describes a trajectory dump. Attributes is the ordered list of
// per-atom attribute tokens written for the "custom" style.
type DumpSpec struct {
	ID         string
	Group      string
	Style      string
	Every      int
	File       string
	Attributes []string
}

// ThermoStyleSpec describes the thermodynamic output format. Attributes is
// only meaningful for the "custom" style.
type ThermoStyleSpec struct {
	Style      string
	Attributes []string
}

// TimestepSpec holds the integration timestep. Raw preserves the document
// token so the emitted command matches the input formatting exactly.
type TimestepSpec struct {
	DT  float64
	Raw string
}

// VelocitySpec describes a velocity directive.
type VelocitySpec struct {
	Group string
	Style string
	Args  []string
}

// RestartSpec describes periodic restart checkpoints.
type RestartSpec struct {
	Every int
	File  string
}

// Runs returns the total number of integration steps requested by all run
// directives in the deck. Decks that fail to parse their run counts report
// the steps that do parse; Validate flags the rest.
func (d *Deck) Runs() int {
	total := 0
	for _, dir := range d.Directives {
		if dir.Kind != "run" || len(dir.Tokens) == 0 {
			continue
		}
		if n, err := parseInt(dir.Tokens[0]); err == nil && n > 0 {
			total += n
		}
	}
	return total
}
