package service

// matchesPage reports whether a page-scoped document applies to the request's
// page identifier. Page keys match exactly, no patterns.
func matchesPage(scopeKey, page string) bool {
	return scopeKey == page
}

// matchesRoute reports whether a route-scoped document applies to the
// request's route path. Route keys are glob patterns where '*' matches any
// run of characters, including '/', and '?' matches exactly one character.
func matchesRoute(scopeKey, route string) bool {
	return matchWildcard(scopeKey, route)
}

// matchWildcard matches s against pattern using iterative backtracking over
// the last-seen '*'. Unlike path.Match, '*' here crosses path separators.
func matchWildcard(pattern, s string) bool {
	var pi, si int
	starPi, starSi := -1, 0

	for si < len(s) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == s[si]):
			pi++
			si++
		case pi < len(pattern) && pattern[pi] == '*':
			starPi, starSi = pi, si
			pi++
		case starPi >= 0:
			// backtrack: let the last '*' consume one more character
			starSi++
			pi, si = starPi+1, starSi
		default:
			return false
		}
	}

	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}

	return pi == len(pattern)
}
