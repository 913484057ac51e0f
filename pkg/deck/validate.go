package deck

import (
	"fmt"
	"strings"
)

// Violation is one semantic problem found in a deck. Validation never stops
// at the first problem; every violation in the document surfaces in one pass.
type Violation struct {
	Key     string
	Line    int
	Message string
}

func (v Violation) String() string {
	if v.Key == "" {
		return v.Message
	}
	return fmt.Sprintf("line %d: %s: %s", v.Line, v.Key, v.Message)
}

// ValidationError adapts a violation list to the error interface for CLI
// plumbing.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("deck validation failed:\n- %s", strings.Join(msgs, "\n- "))
}

// ValidatedDeck wraps a deck that passed validation. Only validated decks
// can be emitted.
type ValidatedDeck struct {
	deck *Deck
}

// Deck returns the underlying deck.
func (vd *ValidatedDeck) Deck() *Deck { return vd.deck }

// Validate checks the deck and returns either a ValidatedDeck or every
// violation found. It is a pure function of the deck: calling it twice
// yields the same violation list.
func (d *Deck) Validate() (*ValidatedDeck, []Violation) {
	c := &checker{
		activeFixes: make(map[string]int),
		activeDumps: make(map[string]int),
	}

	for _, dir := range d.Directives {
		c.directive(dir)
	}
	c.required()

	if len(c.violations) > 0 {
		return nil, c.violations
	}
	return &ValidatedDeck{deck: d}, nil
}

// Check runs Validate and folds any violations into a *ValidationError.
func (d *Deck) Check() error {
	if _, violations := d.Validate(); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// checker accumulates violations and the positional state the ordering and
// handle-lifecycle rules depend on.
type checker struct {
	violations []Violation

	activeFixes map[string]int
	activeDumps map[string]int

	sawUnits     bool
	sawBoundary  bool
	sawData      bool
	sawPairStyle bool
	sawTimestep  bool
}

func (c *checker) addf(dir Directive, format string, args ...interface{}) {
	c.violations = append(c.violations, Violation{
		Key:     dir.Key,
		Line:    dir.Line,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *checker) directive(dir Directive) {
	// Decks built by Load always carry the payload matching their kind;
	// hand-built directives may not.
	switch dir.Kind {
	case "timestep", "velocity", "fix", "thermo_style", "dump", "restart":
		if dir.Fix == nil && dir.Dump == nil && dir.Thermo == nil &&
			dir.Timestep == nil && dir.Velocity == nil && dir.Restart == nil {
			c.addf(dir, "%s directive has no payload", dir.Kind)
			return
		}
	}

	switch dir.Kind {
	case "units":
		c.sawUnits = true
		if len(dir.Tokens) != 1 || !unitsVocab.has(dir.Tokens[0]) {
			c.addf(dir, "units must be one of %s", strings.Join(unitsVocab.sorted(), ", "))
		}
	case "dimension":
		if len(dir.Tokens) != 1 || (dir.Tokens[0] != "2" && dir.Tokens[0] != "3") {
			c.addf(dir, "dimension must be 2 or 3")
		}
	case "boundary":
		c.sawBoundary = true
		if len(dir.Tokens) != 3 {
			c.addf(dir, "boundary needs one token per dimension, got %d", len(dir.Tokens))
			return
		}
		for _, t := range dir.Tokens {
			if !boundaryVocab.has(t) {
				c.addf(dir, "invalid boundary condition %q", t)
			}
		}
	case "atom_style":
		if len(dir.Tokens) != 1 || !atomStyleVocab.has(dir.Tokens[0]) {
			c.addf(dir, "unknown atom_style")
		}
	case "read_data", "read_restart":
		c.sawData = true
		if !c.sawUnits {
			c.addf(dir, "%s must come after units", dir.Kind)
		}
		if len(dir.Tokens) != 1 || dir.Tokens[0] == "" {
			c.addf(dir, "%s needs a file name", dir.Kind)
		}
	case "pair_style":
		c.sawPairStyle = true
		if len(dir.Tokens) == 0 {
			c.addf(dir, "pair_style needs a style name")
		}
	case "pair_coeff":
		if !c.sawPairStyle {
			c.addf(dir, "pair_coeff must come after pair_style")
		}
		if len(dir.Tokens) == 0 {
			c.addf(dir, "pair_coeff needs arguments")
		}
	case "bond_style", "angle_style", "kspace_style", "bond_coeff", "angle_coeff", "group":
		if len(dir.Tokens) == 0 {
			c.addf(dir, "%s needs arguments", dir.Kind)
		}
	case "neighbor":
		c.neighbor(dir)
	case "neigh_modify":
		if len(dir.Tokens) == 0 || len(dir.Tokens)%2 != 0 {
			c.addf(dir, "neigh_modify needs keyword/value pairs")
		}
	case "timestep":
		c.sawTimestep = true
		if dir.Timestep.DT <= 0 {
			c.addf(dir, "timestep dt must be positive, got %s", dir.Timestep.Raw)
		}
	case "velocity":
		c.velocity(dir)
	case "fix":
		c.fix(dir)
	case "unfix":
		c.unfix(dir)
	case "thermo":
		if n, err := firstInt(dir.Tokens); err != nil || n <= 0 {
			c.addf(dir, "thermo interval must be a positive integer")
		}
	case "thermo_style":
		c.thermoStyle(dir)
	case "dump":
		c.dump(dir)
	case "undump":
		c.undump(dir)
	case "restart":
		if dir.Restart.Every <= 0 {
			c.addf(dir, "restart interval must be positive")
		}
		if dir.Restart.File == "" {
			c.addf(dir, "restart needs a file pattern")
		}
	case "run":
		c.run(dir)
	case "min_style":
		if len(dir.Tokens) != 1 || !minStyleVocab.has(dir.Tokens[0]) {
			c.addf(dir, "unknown min_style")
		}
	case "minimize":
		c.minimize(dir)
	case "write_restart", "write_data":
		if len(dir.Tokens) != 1 || dir.Tokens[0] == "" {
			c.addf(dir, "%s needs a file name", dir.Kind)
		}
	default:
		c.addf(dir, "unknown directive %q", dir.Kind)
	}
}

func (c *checker) neighbor(dir Directive) {
	if len(dir.Tokens) != 2 {
		c.addf(dir, "neighbor needs a skin distance and a style")
		return
	}
	if skin, err := parseFloat(dir.Tokens[0]); err != nil || skin <= 0 {
		c.addf(dir, "neighbor skin must be a positive number")
	}
	if !neighborVocab.has(dir.Tokens[1]) {
		c.addf(dir, "neighbor style must be one of %s", strings.Join(neighborVocab.sorted(), ", "))
	}
}

func (c *checker) velocity(dir Directive) {
	spec := dir.Velocity
	if spec.Group == "" {
		c.addf(dir, "velocity needs a group")
	}
	if !velocityStyleVocab.has(spec.Style) {
		c.addf(dir, "unknown velocity style %q", spec.Style)
		return
	}
	if spec.Style == "create" {
		if len(spec.Args) < 2 {
			c.addf(dir, "velocity create needs a temperature and a seed")
			return
		}
		if temp, err := parseFloat(spec.Args[0]); err != nil || temp < 0 {
			c.addf(dir, "velocity create temperature must be >= 0")
		}
		if seed, err := parseInt(spec.Args[1]); err != nil || seed <= 0 {
			c.addf(dir, "velocity create seed must be a positive integer")
		}
	}
}

func (c *checker) fix(dir Directive) {
	spec := dir.Fix
	if spec.ID == "" {
		c.addf(dir, "fix needs an id")
		return
	}
	if spec.Group == "" {
		c.addf(dir, "fix %q needs a group", spec.ID)
	}
	if !fixStyleVocab.has(spec.Style) {
		c.addf(dir, "unknown fix style %q", spec.Style)
	}
	if line, active := c.activeFixes[spec.ID]; active {
		c.addf(dir, "fix id %q is already in use (opened at line %d)", spec.ID, line)
	} else {
		c.activeFixes[spec.ID] = dir.Line
	}
	if spec.Style == "nvt" || spec.Style == "npt" {
		c.thermostatArgs(dir, spec)
	}
}

// thermostatArgs checks the temp keyword triple (Tstart Tstop Tdamp) that
// nvt and npt fixes require.
func (c *checker) thermostatArgs(dir Directive, spec *FixSpec) {
	for i, arg := range spec.Args {
		if arg != "temp" {
			continue
		}
		if len(spec.Args) < i+4 {
			c.addf(dir, "fix %q temp needs Tstart Tstop Tdamp", spec.ID)
			return
		}
		if t, err := parseFloat(spec.Args[i+1]); err != nil || t < 0 {
			c.addf(dir, "fix %q Tstart must be >= 0", spec.ID)
		}
		if t, err := parseFloat(spec.Args[i+2]); err != nil || t < 0 {
			c.addf(dir, "fix %q Tstop must be >= 0", spec.ID)
		}
		if damp, err := parseFloat(spec.Args[i+3]); err != nil || damp <= 0 {
			c.addf(dir, "fix %q Tdamp must be positive", spec.ID)
		}
		return
	}
	c.addf(dir, "fix style %s requires a temp keyword", spec.Style)
}

func (c *checker) unfix(dir Directive) {
	if len(dir.Tokens) != 1 {
		c.addf(dir, "unfix needs exactly one fix id")
		return
	}
	id := dir.Tokens[0]
	if _, active := c.activeFixes[id]; !active {
		c.addf(dir, "unfix %q has no matching active fix", id)
		return
	}
	delete(c.activeFixes, id)
}

func (c *checker) thermoStyle(dir Directive) {
	spec := dir.Thermo
	if !thermoStyleVocab.has(spec.Style) {
		c.addf(dir, "unknown thermo_style %q", spec.Style)
		return
	}
	if spec.Style != "custom" {
		if len(spec.Attributes) > 0 {
			c.addf(dir, "thermo_style %s takes no attributes", spec.Style)
		}
		return
	}
	if len(spec.Attributes) == 0 {
		c.addf(dir, "thermo_style custom needs at least one attribute")
	}
	for _, attr := range spec.Attributes {
		if !thermoAttrVocab.has(attr) {
			c.addf(dir, "unknown thermo attribute %q", attr)
		}
	}
}

func (c *checker) dump(dir Directive) {
	spec := dir.Dump
	if spec.ID == "" {
		c.addf(dir, "dump needs an id")
		return
	}
	if line, active := c.activeDumps[spec.ID]; active {
		c.addf(dir, "dump id %q is already in use (opened at line %d)", spec.ID, line)
	} else {
		c.activeDumps[spec.ID] = dir.Line
	}
	if spec.Group == "" {
		c.addf(dir, "dump %q needs a group", spec.ID)
	}
	if !dumpStyleVocab.has(spec.Style) {
		c.addf(dir, "unknown dump style %q", spec.Style)
		return
	}
	if spec.Every <= 0 {
		c.addf(dir, "dump %q interval must be positive", spec.ID)
	}
	if spec.File == "" {
		c.addf(dir, "dump %q needs a file name", spec.ID)
	}
	if spec.Style != "custom" {
		if len(spec.Attributes) > 0 {
			c.addf(dir, "dump style %s takes no attributes", spec.Style)
		}
		return
	}
	if len(spec.Attributes) == 0 {
		c.addf(dir, "dump custom needs at least one attribute")
	}
	for _, attr := range spec.Attributes {
		if !dumpAttrVocab.has(attr) {
			c.addf(dir, "unknown dump attribute %q", attr)
		}
	}
}

func (c *checker) undump(dir Directive) {
	if len(dir.Tokens) != 1 {
		c.addf(dir, "undump needs exactly one dump id")
		return
	}
	id := dir.Tokens[0]
	if _, active := c.activeDumps[id]; !active {
		c.addf(dir, "undump %q has no matching active dump", id)
		return
	}
	delete(c.activeDumps, id)
}

func (c *checker) run(dir Directive) {
	if !c.sawPairStyle {
		c.addf(dir, "run requires an earlier pair_style")
	}
	if !c.sawTimestep {
		c.addf(dir, "run requires an earlier timestep")
	}
	if n, err := firstInt(dir.Tokens); err != nil || n < 0 {
		c.addf(dir, "run steps must be a non-negative integer")
	}
}

func (c *checker) minimize(dir Directive) {
	if len(dir.Tokens) != 4 {
		c.addf(dir, "minimize needs etol ftol maxiter maxeval")
		return
	}
	for _, t := range dir.Tokens {
		if _, err := parseFloat(t); err != nil {
			c.addf(dir, "minimize argument %q is not a number", t)
		}
	}
}

// required reports directives the engine cannot start without.
func (c *checker) required() {
	missing := func(msg string) {
		c.violations = append(c.violations, Violation{Message: msg})
	}
	if !c.sawUnits {
		missing("missing required directive: units")
	}
	if !c.sawBoundary {
		missing("missing required directive: boundary")
	}
	if !c.sawData {
		missing("missing required directive: read_data or read_restart")
	}
}

func firstInt(tokens []string) (int, error) {
	if len(tokens) != 1 {
		return 0, fmt.Errorf("expected one token, got %d", len(tokens))
	}
	return parseInt(tokens[0])
}
