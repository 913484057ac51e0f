package deck

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError reports a malformed deck document. Parsing is fatal: a deck
// that fails to parse produces no partial result.
type ParseError struct {
	Source string
	Line   int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// payloadKind selects the decoder for a directive's value node.
type payloadKind int

const (
	payloadTokens payloadKind = iota
	payloadFix
	payloadDump
	payloadThermo
	payloadTimestep
	payloadVelocity
	payloadRestart
)

// LoadFile reads and parses a deck document from disk.
func LoadFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading deck file: %w", err)
	}
	return load(data, path)
}

// Load parses a deck document from memory.
func Load(data []byte) (*Deck, error) {
	return load(data, "<memory>")
}

func load(data []byte, source string) (*Deck, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Source: source, Msg: err.Error(), Err: err}
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &ParseError{Source: source, Msg: "empty document"}
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &ParseError{Source: source, Line: doc.Line, Msg: "deck must be a mapping of directives"}
	}

	d := &Deck{Source: source}
	seen := make(map[string]struct{})

	// Mapping content alternates key, value; walking it preserves the
	// document order the emitter must reproduce.
	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, valNode := doc.Content[i], doc.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, &ParseError{Source: source, Line: keyNode.Line, Msg: "directive key must be a scalar"}
		}
		key := keyNode.Value
		if _, dup := seen[key]; dup {
			return nil, &ParseError{Source: source, Line: keyNode.Line, Msg: fmt.Sprintf("duplicate directive key %q", key)}
		}
		seen[key] = struct{}{}

		dir := Directive{
			Kind: strings.TrimRight(key, "0123456789"),
			Key:  key,
			Line: keyNode.Line,
		}
		if err := decodePayload(&dir, valNode, source); err != nil {
			return nil, err
		}
		d.Directives = append(d.Directives, dir)
	}

	return d, nil
}

func decodePayload(dir *Directive, n *yaml.Node, source string) error {
	var err error
	switch directiveKinds[dir.Kind] {
	case payloadFix:
		dir.Fix, err = decodeFix(n, source)
	case payloadDump:
		dir.Dump, err = decodeDump(n, source)
	case payloadThermo:
		dir.Thermo, err = decodeThermo(n, source)
	case payloadTimestep:
		dir.Timestep, err = decodeTimestep(n, source)
	case payloadVelocity:
		dir.Velocity, err = decodeVelocity(n, source)
	case payloadRestart:
		dir.Restart, err = decodeRestart(n, source)
	default:
		dir.Tokens, err = tokens(n, source)
	}
	if err != nil {
		return fmt.Errorf("directive %q: %w", dir.Key, err)
	}
	return nil
}

// tokens flattens a scalar, sequence, or flat mapping value into its
// whitespace-separated token list. Raw scalar text is preserved so emission
// stays byte-stable.
func tokens(n *yaml.Node, source string) ([]string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return strings.Fields(n.Value), nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, &ParseError{Source: source, Line: item.Line, Msg: "sequence items must be scalars"}
			}
			out = append(out, item.Value)
		}
		return out, nil
	case yaml.MappingNode:
		out := make([]string, 0, len(n.Content))
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
				return nil, &ParseError{Source: source, Line: k.Line, Msg: "mapping entries must be scalar pairs"}
			}
			out = append(out, k.Value, v.Value)
		}
		return out, nil
	default:
		return nil, &ParseError{Source: source, Line: n.Line, Msg: "unsupported value type"}
	}
}

// mapping returns the field nodes of a structured directive value, keyed by
// field name, rejecting anything outside the allowed field set.
func mapping(n *yaml.Node, source string, allowed ...string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, &ParseError{Source: source, Line: n.Line, Msg: "value must be a mapping"}
	}
	ok := newStringSet(allowed...)
	fields := make(map[string]*yaml.Node)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, &ParseError{Source: source, Line: k.Line, Msg: "field name must be a scalar"}
		}
		if !ok.has(k.Value) {
			return nil, &ParseError{Source: source, Line: k.Line, Msg: fmt.Sprintf("unknown field %q", k.Value)}
		}
		fields[k.Value] = v
	}
	return fields, nil
}

func scalarField(fields map[string]*yaml.Node, name, source string) (string, error) {
	n, ok := fields[name]
	if !ok {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", &ParseError{Source: source, Line: n.Line, Msg: fmt.Sprintf("field %q must be a scalar", name)}
	}
	return n.Value, nil
}

func intField(fields map[string]*yaml.Node, name, source string) (int, error) {
	raw, err := scalarField(fields, name, source)
	if err != nil || raw == "" {
		return 0, err
	}
	v, err := parseInt(raw)
	if err != nil {
		return 0, &ParseError{Source: source, Line: fields[name].Line, Msg: fmt.Sprintf("field %q must be an integer", name)}
	}
	return v, nil
}

func tokenField(fields map[string]*yaml.Node, name, source string) ([]string, error) {
	n, ok := fields[name]
	if !ok {
		return nil, nil
	}
	return tokens(n, source)
}

func decodeFix(n *yaml.Node, source string) (*FixSpec, error) {
	fields, err := mapping(n, source, "id", "group", "style", "args")
	if err != nil {
		return nil, err
	}
	spec := &FixSpec{}
	if spec.ID, err = scalarField(fields, "id", source); err != nil {
		return nil, err
	}
	if spec.Group, err = scalarField(fields, "group", source); err != nil {
		return nil, err
	}
	if spec.Style, err = scalarField(fields, "style", source); err != nil {
		return nil, err
	}
	if spec.Args, err = tokenField(fields, "args", source); err != nil {
		return nil, err
	}
	return spec, nil
}

func decodeDump(n *yaml.Node, source string) (*DumpSpec, error) {
	fields, err := mapping(n, source, "id", "group", "style", "every", "file", "attributes")
	if err != nil {
		return nil, err
	}
	spec := &DumpSpec{}
	if spec.ID, err = scalarField(fields, "id", source); err != nil {
		return nil, err
	}
	if spec.Group, err = scalarField(fields, "group", source); err != nil {
		return nil, err
	}
	if spec.Style, err = scalarField(fields, "style", source); err != nil {
		return nil, err
	}
	if spec.Every, err = intField(fields, "every", source); err != nil {
		return nil, err
	}
	if spec.File, err = scalarField(fields, "file", source); err != nil {
		return nil, err
	}
	if spec.Attributes, err = tokenField(fields, "attributes", source); err != nil {
		return nil, err
	}
	return spec, nil
}

func decodeThermo(n *yaml.Node, source string) (*ThermoStyleSpec, error) {
	// Shorthand scalar form picks a style with no attribute list.
	if n.Kind == yaml.ScalarNode {
		return &ThermoStyleSpec{Style: n.Value}, nil
	}
	fields, err := mapping(n, source, "style", "attributes")
	if err != nil {
		return nil, err
	}
	spec := &ThermoStyleSpec{}
	if spec.Style, err = scalarField(fields, "style", source); err != nil {
		return nil, err
	}
	if spec.Attributes, err = tokenField(fields, "attributes", source); err != nil {
		return nil, err
	}
	return spec, nil
}

func decodeTimestep(n *yaml.Node, source string) (*TimestepSpec, error) {
	raw := ""
	switch n.Kind {
	case yaml.ScalarNode:
		raw = n.Value
	case yaml.MappingNode:
		fields, err := mapping(n, source, "dt")
		if err != nil {
			return nil, err
		}
		if raw, err = scalarField(fields, "dt", source); err != nil {
			return nil, err
		}
	default:
		return nil, &ParseError{Source: source, Line: n.Line, Msg: "timestep must be a number or a {dt: ...} mapping"}
	}
	dt, err := parseFloat(raw)
	if err != nil {
		return nil, &ParseError{Source: source, Line: n.Line, Msg: fmt.Sprintf("timestep %q is not a number", raw)}
	}
	return &TimestepSpec{DT: dt, Raw: raw}, nil
}

func decodeVelocity(n *yaml.Node, source string) (*VelocitySpec, error) {
	fields, err := mapping(n, source, "group", "style", "args")
	if err != nil {
		return nil, err
	}
	spec := &VelocitySpec{}
	if spec.Group, err = scalarField(fields, "group", source); err != nil {
		return nil, err
	}
	if spec.Style, err = scalarField(fields, "style", source); err != nil {
		return nil, err
	}
	if spec.Args, err = tokenField(fields, "args", source); err != nil {
		return nil, err
	}
	return spec, nil
}

func decodeRestart(n *yaml.Node, source string) (*RestartSpec, error) {
	fields, err := mapping(n, source, "every", "file")
	if err != nil {
		return nil, err
	}
	spec := &RestartSpec{}
	if spec.Every, err = intField(fields, "every", source); err != nil {
		return nil, err
	}
	if spec.File, err = scalarField(fields, "file", source); err != nil {
		return nil, err
	}
	return spec, nil
}

func parseInt(s string) (int, error) { return strconv.Atoi(s) }

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
