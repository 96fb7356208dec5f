package main

import (
	"github.com/c9s/glassnode/pkg/cmd"
)

// go run ./cmd/glassnode metrics --prefix=/market/
func main() {
	cmd.Execute()
}
