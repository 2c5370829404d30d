// logsift - Error Log Scanner
//
// logsift scans a directory of log files modified in the last week and
// reports every line logged at error level.
package main

import (
	"os"

	"github.com/ccollicutt/logsift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
