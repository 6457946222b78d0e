package main

import (
	"github.com/rocforge/go-rocdl/pkg/cmd"
)

func main() {
	cmd.Execute()
}
