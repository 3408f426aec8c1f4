//go:build graphdebug

package graph

import "fmt"

// debugAssertEqual panics with msg when a and b differ. Compiled in
// only under -tags graphdebug; the release path never pays for it.
func debugAssertEqual(a, b int, msg string) {
	if a != b {
		panic(fmt.Sprintf("graph: %s (%d != %d)", msg, a, b))
	}
}
