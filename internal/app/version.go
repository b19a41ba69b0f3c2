package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is overridden at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether args request the version string.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "fibseq %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
