package deck

import (
	"bytes"
	"strings"
	"testing"
)

const meltScript = `units metal
dimension 3
boundary p p p
atom_style atomic
read_data data.cu.lmp
pair_style eam/alloy
pair_coeff * * Cu_u3.eam.alloy Cu
neighbor 2.0 bin
neigh_modify delay 0 every 1 check yes
timestep 1.0
velocity all create 300.0 4928459 dist gaussian
fix npt all npt temp 300.0 300.0 100.0 iso 1.0 1.0 100.0
thermo 100
thermo_style custom step temp press vol
dump traj all custom 1000 dump.melt.lammpstrj id type x y z vx vy vz
restart 10000 restart.melt.*
run 20000
unfix npt
fix nvt all nvt temp 300.0 300.0 100.0
run 50000
write_restart melt.final.restart
`

func mustValidate(t *testing.T, d *Deck) *ValidatedDeck {
	t.Helper()
	vd, violations := d.Validate()
	if len(violations) != 0 {
		t.Fatalf("Deck failed validation: %v", violations)
	}
	return vd
}

func TestEmitSampleDeck(t *testing.T) {
	d, err := LoadFile("testdata/melt.yaml")
	if err != nil {
		t.Fatalf("Failed to load deck: %v", err)
	}
	vd := mustValidate(t, d)

	if got := vd.Script(); got != meltScript {
		t.Errorf("Emitted script mismatch.\nGot:\n%s\nWant:\n%s", got, meltScript)
	}
}

func TestEmitPreservesDirectiveOrder(t *testing.T) {
	d, err := LoadFile("testdata/melt.yaml")
	if err != nil {
		t.Fatalf("Failed to load deck: %v", err)
	}
	vd := mustValidate(t, d)

	lines := strings.Split(strings.TrimRight(vd.Script(), "\n"), "\n")
	if len(lines) != len(d.Directives) {
		t.Fatalf("Expected %d command lines, got %d", len(d.Directives), len(lines))
	}
	for i, dir := range d.Directives {
		if !strings.HasPrefix(lines[i], dir.Kind+" ") {
			t.Errorf("Line %d: expected %q command, got %q", i, dir.Kind, lines[i])
		}
	}
}

func TestEmitFixBeforeUnfix(t *testing.T) {
	d, err := LoadFile("testdata/melt.yaml")
	if err != nil {
		t.Fatalf("Failed to load deck: %v", err)
	}
	script := mustValidate(t, d).Script()

	fixIdx := strings.Index(script, "fix npt all npt temp 300.0 300.0 100.0 iso 1.0 1.0 100.0")
	unfixIdx := strings.Index(script, "unfix npt")
	if fixIdx < 0 {
		t.Fatal("Emitted script is missing the npt fix command")
	}
	if unfixIdx < 0 {
		t.Fatal("Emitted script is missing the unfix command")
	}
	if fixIdx > unfixIdx {
		t.Error("fix npt must be emitted before unfix npt")
	}
}

func TestEmitDeterministic(t *testing.T) {
	d := mustLoad(t, validDeck)
	vd := mustValidate(t, d)

	first := vd.Script()
	second := vd.Script()
	if first != second {
		t.Error("Repeated emission must be byte-identical")
	}

	var buf bytes.Buffer
	if err := vd.Emit(&buf); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if buf.String() != first {
		t.Error("Emit and Script must produce identical output")
	}
}

func TestEmitScalarStability(t *testing.T) {
	// Numeric tokens must be reproduced exactly as written, not reformatted.
	doc := strings.Replace(validDeck, "timestep: 0.005", "timestep: 0.0050", 1)
	d := mustLoad(t, doc)
	script := mustValidate(t, d).Script()
	if !strings.Contains(script, "timestep 0.0050\n") {
		t.Errorf("Expected raw timestep token preserved, got:\n%s", script)
	}
}
