package nuclide

import "strings"

// symbols lists element symbols ordered by atomic number; symbols[0] is hydrogen.
var symbols = [...]string{
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// bySymbol maps a lower-case symbol to its atomic number.
var bySymbol = func() map[string]int {
	m := make(map[string]int, len(symbols))
	for i, s := range symbols {
		m[strings.ToLower(s)] = i + 1
	}
	return m
}()

// LookupElement returns the canonical symbol and atomic number for sym,
// matched case-insensitively. ok is false for unknown symbols.
func LookupElement(sym string) (canonical string, z int, ok bool) {
	z, ok = bySymbol[strings.ToLower(sym)]
	if !ok {
		return "", 0, false
	}
	return symbols[z-1], z, true
}

// Symbol returns the element symbol for atomic number z, or "" when z is out of range.
func Symbol(z int) string {
	if z < 1 || z > len(symbols) {
		return ""
	}
	return symbols[z-1]
}
