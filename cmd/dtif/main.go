package main

import (
	"os"

	"github.com/hashicorp-forge/dtif/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
