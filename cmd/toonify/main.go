// Toonify - token-efficient notation for language model prompts
package main

import (
	"os"

	"github.com/HartBrook/toonify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
