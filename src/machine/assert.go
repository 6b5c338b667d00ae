//go:build !debug
// +build !debug

package machine

// debugAssert compiles to nothing outside debug builds. The condition it
// guards is a precondition callers must uphold.
//
//go:inline
func debugAssert(ok bool, msg string) {}
