// Command docsight is a terminal client for a document question-answering
// service with citation deep linking.
package main

import (
	"os"

	"github.com/docsight-labs/docsight-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
