package main

import (
	"os"

	"github.com/RMahshie/rfdesk/cmd/rfcalc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
