package main

import (
	"dreamcpp/cmd"
)

// main is the program entry point. It delegates to cmd.Execute, which parses
// the command line and runs the selected command.
//
// dreamcpp is a project tool for C and C++:
//   - `new` scaffolds a project with a dreamcpp.toml manifest and a starter source file
//   - `add` resolves a dependency name against the remote index and records it in the manifest
//   - `sync` clones or downloads every missing dependency into build/deps
//   - `build` and `run` compile all sources with one compiler invocation and run the result
//
// Any failure ends the process with status 1 after it has been logged.
func main() {
	cmd.Execute()
}
