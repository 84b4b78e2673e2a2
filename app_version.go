package main

import (
	"runtime/debug"
)

// set with -ldflags "-X main.app_ver=..."
var app_ver string = ""

// app_version prefers the module version recorded by go install, then the
// ldflags value, and reports "#UNAVAILABLE" when neither is known.
func app_version() string {
	if v, ok := debug.ReadBuildInfo(); ok && v.Main.Version != "" && v.Main.Version != "(devel)" {
		return v.Main.Version
	}
	if app_ver != "" {
		return app_ver
	}
	return "#UNAVAILABLE"
}
