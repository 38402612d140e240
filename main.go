package main

import (
	"github.com/xkilldash9x/uiprobe/cmd"
)

// main is the entry point for the uiprobe binary. All command-line parsing,
// configuration and execution lives in the cmd package.
func main() {
	cmd.Execute()
}
