// Package logger prints the levelled, coloured status lines every dreamcpp
// command writes while it works.
package logger

import (
	"github.com/fatih/color"
)

// Info reports progress: a project scaffolded, a dependency cloned, a build finished.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn reports something a command works around and continues past, such as a
// dependency already in the manifest or headers that could not be relocated.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error reports a failure. cmd.Execute logs the fatal error here before exiting with status 1.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug traces resolution, fetch and compile details. It stays a no-op until
// Init enables it, so library code and tests can call it freely.
var Debug = func(format string, a ...any) {}

// Init switches Debug output on when verbose is set (`-v/--verbose`) and off otherwise.
func Init(verbose bool) {
	if verbose {
		Debug = color.New(color.FgCyan).PrintfFunc()
		return
	}
	Debug = func(format string, a ...any) {}
}
