// Command speedcfg fetches the speedtest.net configuration document and
// prints its client, times, download and upload settings.
package main

import "github.com/princespaghetti/speedcfg/internal/cli"

func main() {
	cli.Execute()
}
