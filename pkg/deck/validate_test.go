package deck

import (
	"reflect"
	"strings"
	"testing"
)

const validDeck = `units: lj
boundary: p p p
read_data: data.lj
pair_style: lj/cut 2.5
pair_coeff: "* * 1.0 1.0 2.5"
timestep: 0.005
fix1:
  id: npt
  group: all
  style: npt
  args: [temp, 1.0, 1.0, 0.1, iso, 1.0, 1.0, 1.0]
run1: 100
unfix1: npt
`

func mustLoad(t *testing.T, doc string) *Deck {
	t.Helper()
	d, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Failed to load deck: %v", err)
	}
	return d
}

func hasViolation(violations []Violation, substr string) bool {
	for _, v := range violations {
		if strings.Contains(v.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateSampleDeck(t *testing.T) {
	d, err := LoadFile("testdata/melt.yaml")
	if err != nil {
		t.Fatalf("Failed to load deck: %v", err)
	}
	vd, violations := d.Validate()
	if len(violations) != 0 {
		t.Fatalf("Expected no violations, got %v", violations)
	}
	if vd == nil {
		t.Fatal("Expected a validated deck")
	}
}

func TestValidateMinimalDeck(t *testing.T) {
	d := mustLoad(t, validDeck)
	if err := d.Check(); err != nil {
		t.Fatalf("Expected valid deck, got %v", err)
	}
}

func TestUnfixWithoutFix(t *testing.T) {
	doc := strings.Replace(validDeck, "unfix1: npt", "unfix1: nvt", 1)
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, "no matching active fix") {
		t.Errorf("Expected unfix violation, got %v", violations)
	}
}

func TestUnfixBeforeFix(t *testing.T) {
	doc := `units: lj
boundary: p p p
read_data: data.lj
pair_style: lj/cut 2.5
timestep: 0.005
unfix1: npt
fix1:
  id: npt
  group: all
  style: nve
run1: 100
`
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, "no matching active fix") {
		t.Errorf("Expected unfix-before-fix violation, got %v", violations)
	}
}

func TestFixHandleReuseAfterUnfix(t *testing.T) {
	doc := validDeck + `fix2:
  id: npt
  group: all
  style: nvt
  args: [temp, 1.0, 1.0, 0.1]
run2: 100
`
	d := mustLoad(t, doc)
	if err := d.Check(); err != nil {
		t.Errorf("Handle reuse after unfix must be allowed, got %v", err)
	}
}

func TestDuplicateActiveFixHandle(t *testing.T) {
	doc := strings.Replace(validDeck, "unfix1: npt", `fix2:
  id: npt
  group: all
  style: nve
`, 1)
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, "already in use") {
		t.Errorf("Expected duplicate handle violation, got %v", violations)
	}
}

func TestUnknownDumpAttribute(t *testing.T) {
	doc := validDeck + `dump1:
  id: traj
  group: all
  style: custom
  every: 100
  file: dump.lj
  attributes: [id, wobble, x]
`
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, `unknown dump attribute "wobble"`) {
		t.Errorf("Expected dump attribute violation, got %v", violations)
	}
}

func TestUnknownThermoAttribute(t *testing.T) {
	doc := validDeck + `thermo_style:
  style: custom
  attributes: [step, vibes]
`
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, `unknown thermo attribute "vibes"`) {
		t.Errorf("Expected thermo attribute violation, got %v", violations)
	}
}

func TestTimestepBoundaries(t *testing.T) {
	cases := []struct {
		dt    string
		valid bool
	}{
		{"1.0", true},
		{"0.005", true},
		{"0", false},
		{"0.0", false},
		{"-1.0", false},
	}
	for _, tc := range cases {
		doc := strings.Replace(validDeck, "timestep: 0.005", "timestep: "+tc.dt, 1)
		d := mustLoad(t, doc)
		_, violations := d.Validate()
		got := !hasViolation(violations, "timestep dt must be positive")
		if got != tc.valid {
			t.Errorf("dt=%s: expected valid=%v, got violations %v", tc.dt, tc.valid, violations)
		}
	}
}

func TestRunBeforePairStyle(t *testing.T) {
	doc := `units: lj
boundary: p p p
read_data: data.lj
timestep: 0.005
run1: 100
pair_style: lj/cut 2.5
`
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, "run requires an earlier pair_style") {
		t.Errorf("Expected ordering violation, got %v", violations)
	}
}

func TestRunBeforeTimestep(t *testing.T) {
	doc := `units: lj
boundary: p p p
read_data: data.lj
pair_style: lj/cut 2.5
run1: 100
`
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, "run requires an earlier timestep") {
		t.Errorf("Expected ordering violation, got %v", violations)
	}
}

func TestReadDataBeforeUnits(t *testing.T) {
	doc := `read_data: data.lj
units: lj
boundary: p p p
`
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, "read_data must come after units") {
		t.Errorf("Expected ordering violation, got %v", violations)
	}
}

func TestMissingRequiredDirectives(t *testing.T) {
	d := mustLoad(t, "thermo: 100\n")
	_, violations := d.Validate()
	for _, want := range []string{
		"missing required directive: units",
		"missing required directive: boundary",
		"missing required directive: read_data or read_restart",
	} {
		if !hasViolation(violations, want) {
			t.Errorf("Expected violation %q, got %v", want, violations)
		}
	}
}

func TestAllViolationsCollected(t *testing.T) {
	// One pass must surface every problem, not stop at the first.
	doc := `units: parsecs
boundary: p p
timestep: -1.0
unfix1: ghost
`
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if len(violations) < 5 {
		t.Errorf("Expected at least 5 violations, got %d: %v", len(violations), violations)
	}
}

func TestUnknownDirectiveRejected(t *testing.T) {
	doc := validDeck + "torque1: all 300.0\n"
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, `unknown directive "torque"`) {
		t.Errorf("Expected unknown directive violation, got %v", violations)
	}
}

func TestNegativeTemperatureRejected(t *testing.T) {
	doc := strings.Replace(validDeck,
		"args: [temp, 1.0, 1.0, 0.1, iso, 1.0, 1.0, 1.0]",
		"args: [temp, -1.0, 1.0, 0.1, iso, 1.0, 1.0, 1.0]", 1)
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, "Tstart must be >= 0") {
		t.Errorf("Expected temperature violation, got %v", violations)
	}
}

func TestThermostatRequiresTempKeyword(t *testing.T) {
	doc := strings.Replace(validDeck,
		"args: [temp, 1.0, 1.0, 0.1, iso, 1.0, 1.0, 1.0]",
		"args: [iso, 1.0, 1.0, 1.0]", 1)
	d := mustLoad(t, doc)
	_, violations := d.Validate()
	if !hasViolation(violations, "requires a temp keyword") {
		t.Errorf("Expected temp keyword violation, got %v", violations)
	}
}

func TestValidateIdempotent(t *testing.T) {
	doc := strings.Replace(validDeck, "unfix1: npt", "unfix1: ghost", 1)
	d := mustLoad(t, doc)
	_, first := d.Validate()
	_, second := d.Validate()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Validation is not idempotent: %v vs %v", first, second)
	}

	valid := mustLoad(t, validDeck)
	_, v1 := valid.Validate()
	_, v2 := valid.Validate()
	if len(v1) != 0 || len(v2) != 0 {
		t.Errorf("Valid deck must validate clean twice, got %v and %v", v1, v2)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	d := mustLoad(t, "thermo: 100\n")
	err := d.Check()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}
	if len(verr.Violations) == 0 {
		t.Error("Expected collected violations")
	}
	if !strings.Contains(err.Error(), "deck validation failed") {
		t.Errorf("Unexpected error text: %v", err)
	}
}
