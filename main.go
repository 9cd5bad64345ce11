// main.go
//
// Entry point for the wordle engine binary.
//
// Subcommands (see root.go and siblings):
//   - serve   : HTTP API backed by the configured session store.
//   - play    : interactive game in the terminal.
//   - score   : print the marks for one guess against one answer.
//   - version : print the build version.
//
// Configuration comes from an optional YAML file (--config), a .env file
// and the process environment, in that order of increasing priority.

package main

func main() {
	Execute()
}
