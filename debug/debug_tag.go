//go:build debug

package debug

// Debug enables additional invariant checks and verbose stacks.
const Debug = true
