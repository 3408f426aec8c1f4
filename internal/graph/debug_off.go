//go:build !graphdebug

package graph

func debugAssertEqual(a, b int, msg string) {}
