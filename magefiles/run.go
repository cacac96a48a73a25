//go:build mage

package main

import (
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Run builds the binary and prints a condition overview, e.g. mage run bronchiolitis.
func Run(condition string) error {
	mg.Deps(Build)
	args := append([]string{"condition-overview"}, strings.Fields(condition)...)
	return sh.RunV(binDir+"/"+binName, args...)
}

// Serve builds the binary and starts the HTTP API on the configured address.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(binDir+"/"+binName, "serve")
}
