// Command printcost quotes 3D prints from the terminal: inspect STL
// files, price them with the stored settings, run quote scripts and
// re-export scaled models.
package main

import (
	"os"

	"github.com/chazu/printcost/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
