// Command rafor is the CLI front-end for the rf training engine: a thin
// façade that wires cobra subcommands to internal/csvdata and the rf
// package.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("rafor: fatal precondition violation")
			fmt.Fprintf(os.Stderr, "rafor: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := Execute(); err != nil {
		logrus.WithError(err).Error("rafor: command failed")
		os.Exit(1)
	}
}
