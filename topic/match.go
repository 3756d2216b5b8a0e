package topic

import "strings"

// Match reports whether a concrete topic name matches a subscribe
// filter under MQTT wildcard rules.
//
// The filter may contain "+" (one level) and "#" (all remaining levels,
// final position only); the name must be concrete. Names starting with
// "$" are only matched by filters that also start with "$", and never by
// a leading wildcard.
func Match(filter, name string) bool {
	if filter == "" || name == "" {
		return false
	}
	if filter == name {
		return true
	}

	filterLevels := strings.Split(filter, "/")
	nameLevels := strings.Split(name, "/")

	if strings.HasPrefix(name, "$") {
		// A leading wildcard never matches a $-prefixed topic.
		if filterLevels[0] == "+" || filterLevels[0] == "#" {
			return false
		}
	}

	for i, f := range filterLevels {
		if f == "#" {
			return true
		}
		if i >= len(nameLevels) {
			return false
		}
		if f == "+" {
			continue
		}
		if f != nameLevels[i] {
			return false
		}
	}

	return len(filterLevels) == len(nameLevels)
}
