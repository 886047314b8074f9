package main

import (
	"os"

	"github.com/nsupdate-interactive/nsupdate-interactive/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
