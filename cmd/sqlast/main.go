// Command sqlast parses a SQL SELECT statement and prints its
// canonical JSON-isomorphic AST.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("sqlast failed")
		os.Exit(1)
	}
}
