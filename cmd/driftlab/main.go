// Command driftlab materializes bike_rental schema snapshots into a local
// SQLite database for the data quality workshop.
package main

import "github.com/mesh-intelligence/driftlab/internal/cli"

func main() {
	cli.Execute()
}
