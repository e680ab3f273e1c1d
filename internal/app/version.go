package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Version is set at build time with
// -ldflags "-X github.com/darksharpness/int2048/internal/app.Version=v1.0.0".
var Version = "dev"

// HasVersionFlag reports whether args ask for the version, so it can be
// printed before the rest of the flags are validated.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		case "--":
			return false
		}
	}
	return false
}

// PrintVersion writes the version, toolchain and platform.
func PrintVersion(out io.Writer) {
	version := Version
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	fmt.Fprintf(out, "int2048 %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
