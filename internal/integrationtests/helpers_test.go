package integration_tests

import "strings"

func countOf(s, sub string) int {
	return strings.Count(s, sub)
}
