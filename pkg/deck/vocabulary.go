package deck

import "sort"

// stringSet is a membership set over directive value tokens.
type stringSet map[string]struct{}

func newStringSet(tokens ...string) stringSet {
	s := make(stringSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

func (s stringSet) has(token string) bool {
	_, ok := s[token]
	return ok
}

// sorted returns the set members in lexical order, for listings.
func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Directive kinds the loader understands, keyed by canonical name. Each
// entry names the payload decoder used for that kind; kinds outside this
// registry still load (as raw tokens) and are flagged by the validator.
var directiveKinds = map[string]payloadKind{
	"units":         payloadTokens,
	"dimension":     payloadTokens,
	"boundary":      payloadTokens,
	"atom_style":    payloadTokens,
	"read_data":     payloadTokens,
	"read_restart":  payloadTokens,
	"pair_style":    payloadTokens,
	"pair_coeff":    payloadTokens,
	"bond_style":    payloadTokens,
	"bond_coeff":    payloadTokens,
	"angle_style":   payloadTokens,
	"angle_coeff":   payloadTokens,
	"kspace_style":  payloadTokens,
	"neighbor":      payloadTokens,
	"neigh_modify":  payloadTokens,
	"group":         payloadTokens,
	"timestep":      payloadTimestep,
	"velocity":      payloadVelocity,
	"fix":           payloadFix,
	"unfix":         payloadTokens,
	"thermo":        payloadTokens,
	"thermo_style":  payloadThermo,
	"dump":          payloadDump,
	"undump":        payloadTokens,
	"restart":       payloadRestart,
	"run":           payloadTokens,
	"min_style":     payloadTokens,
	"minimize":      payloadTokens,
	"write_restart": payloadTokens,
	"write_data":    payloadTokens,
}

// Value vocabularies enforced by the validator. These mirror the subset of
// engine syntax the generator is willing to write; anything outside them is
// reported rather than passed through.
var (
	unitsVocab     = newStringSet("lj", "real", "metal", "si", "cgs", "electron", "micro", "nano")
	boundaryVocab  = newStringSet("p", "f", "s", "m", "fs", "fm")
	atomStyleVocab = newStringSet("atomic", "angle", "bond", "charge", "full", "molecular", "sphere")
	neighborVocab  = newStringSet("bin", "nsq", "multi")
	minStyleVocab  = newStringSet("cg", "sd", "fire", "hftn", "quickmin")

	fixStyleVocab      = newStringSet("nve", "nvt", "npt", "nph", "langevin", "momentum", "recenter", "spring")
	velocityStyleVocab = newStringSet("create", "set", "scale", "ramp", "zero")
	dumpStyleVocab     = newStringSet("atom", "custom", "xyz", "cfg")
	thermoStyleVocab   = newStringSet("one", "multi", "custom")

	// Per-atom attributes a custom dump may request.
	dumpAttrVocab = newStringSet(
		"id", "mol", "type", "mass", "q",
		"x", "y", "z", "xu", "yu", "zu", "xs", "ys", "zs",
		"vx", "vy", "vz", "fx", "fy", "fz",
	)

	// Global attributes a custom thermo_style may request.
	thermoAttrVocab = newStringSet(
		"step", "time", "elapsed", "dt", "cpu", "atoms",
		"temp", "press", "vol", "density", "lx", "ly", "lz",
		"pe", "ke", "etotal", "evdwl", "ecoul", "ebond", "eangle", "elong", "enthalpy",
	)
)

// KnownDirectives returns the canonical directive names in lexical order.
func KnownDirectives() []string {
	names := make([]string, 0, len(directiveKinds))
	for name := range directiveKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DumpAttributes returns the allowed custom dump attribute tokens.
func DumpAttributes() []string { return dumpAttrVocab.sorted() }

// ThermoAttributes returns the allowed custom thermo_style attribute tokens.
func ThermoAttributes() []string { return thermoAttrVocab.sorted() }
