package midi

import "strings"

// Devices matching any of these patterns are picked first, in order.
var preferredPatterns = []string{"Launchkey", "Novation"}

// Virtual/system ports that are never auto-picked.
var excludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// Detect picks an output port from names. Virtual/system ports are dropped,
// then the first name matching a preferred pattern wins, case-insensitively.
// With no preferred match, a lone remaining candidate is taken.
func Detect(names []string) (string, bool) {
	var candidates []string
	for _, name := range names {
		if isExcluded(name) {
			continue
		}
		candidates = append(candidates, name)
	}
	for _, pat := range preferredPatterns {
		for _, name := range candidates {
			if containsCI(name, pat) {
				return name, true
			}
		}
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}
	return "", false
}

func isExcluded(name string) bool {
	for _, pat := range excludedPatterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
