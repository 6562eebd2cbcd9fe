package main

import (
	"os"

	"github.com/memoriam-dev/memoriam/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
