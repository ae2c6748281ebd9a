package main

import (
	"sapconnect/cmd"

	// Registers the COM-backed scripting engine on Windows builds.
	_ "sapconnect/internal/scripting/windows"
)

func main() {
	cmd.Execute()
}
