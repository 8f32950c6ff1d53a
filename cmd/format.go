package cmd

import (
	"fmt"
	"strings"
)

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// joinLimit joins up to n items, noting how many were left out.
func joinLimit(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s, +%d more", strings.Join(items[:n], ", "), len(items)-n)
}
