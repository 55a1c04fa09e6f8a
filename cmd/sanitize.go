package cmd

import "strings"

// sanitize replaces control characters (runes < 0x20 or == 0x7F) with '?'.
// Diagnostic messages quote raw nuclide tokens, and artifact and bundle
// paths come from flags or .ddata.yml; all of them pass through here before
// reaching the terminal.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '?'
		}
		return r
	}, s)
}
