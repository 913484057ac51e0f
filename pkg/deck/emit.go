package deck

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Emit writes the engine command script for the deck: one command line per
// directive, in document order. Output is deterministic; the same deck
// always produces byte-identical text.
func (vd *ValidatedDeck) Emit(w io.Writer) error {
	for _, dir := range vd.deck.Directives {
		if _, err := fmt.Fprintln(w, commandLine(dir)); err != nil {
			return fmt.Errorf("error writing script: %w", err)
		}
	}
	return nil
}

// Script returns the emitted command script as a string.
func (vd *ValidatedDeck) Script() string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = vd.Emit(&b)
	return b.String()
}

// commandLine renders one directive in the engine's input syntax.
func commandLine(dir Directive) string {
	switch dir.Kind {
	case "fix":
		return join("fix", dir.Fix.ID, dir.Fix.Group, dir.Fix.Style, strings.Join(dir.Fix.Args, " "))
	case "dump":
		spec := dir.Dump
		return join("dump", spec.ID, spec.Group, spec.Style,
			strconv.Itoa(spec.Every), spec.File, strings.Join(spec.Attributes, " "))
	case "thermo_style":
		return join("thermo_style", dir.Thermo.Style, strings.Join(dir.Thermo.Attributes, " "))
	case "timestep":
		return join("timestep", dir.Timestep.Raw)
	case "velocity":
		return join("velocity", dir.Velocity.Group, dir.Velocity.Style, strings.Join(dir.Velocity.Args, " "))
	case "restart":
		return join("restart", strconv.Itoa(dir.Restart.Every), dir.Restart.File)
	default:
		return join(dir.Kind, strings.Join(dir.Tokens, " "))
	}
}

// join assembles a command line, skipping empty parts so optional pieces
// never leave double spaces behind.
func join(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
