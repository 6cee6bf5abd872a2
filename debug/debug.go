package debug

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Stack returns the current call stack as a readable string.
func Stack() string {
	var sbb strings.Builder
	WriteStack(&sbb)
	return sbb.String()
}

// WriteStack writes the current call stack to sbb, skipping runtime and
// third-party frames unless the debug build tag is set.
func WriteStack(sbb *strings.Builder, forceClean ...bool) {
	// derived from: https://golang.org/pkg/runtime/#example_Frames
	// we stop when func name == main.main
	pc := make([]uintptr, 40)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return
	}
	pc = pc[:n]
	frames := runtime.CallersFrames(pc)
	for {
		frame, more := frames.Next()
		fe := strings.Split(frame.Function, "/")
		function := fe[len(fe)-1]
		file := filepath.Base(frame.File)

		if !Debug || (len(forceClean) > 0 && forceClean[0]) {
			if strings.Contains(function, "runtime.gopanic") {
				continue
			}
			if strings.Contains(function, "runtime.") {
				continue
			}
			if strings.HasSuffix(file, "_test.go") {
				continue
			}
		}
		sbb.WriteString(function)
		sbb.WriteString("\n\t")
		sbb.WriteString(file)
		sbb.WriteString(":")
		sbb.WriteString(strconv.Itoa(frame.Line))
		sbb.WriteByte('\n')
		if !more {
			break
		}
		if strings.HasSuffix(function, "main.main") {
			break
		}
	}
}
