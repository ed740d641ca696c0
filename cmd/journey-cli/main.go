package main

import (
	"github.com/r-lyeh-archived/journey/cmd/journey-cli/cmd"
)

func main() {
	cmd.Execute()
}
