// sectorbook generates sector-specific AI risk playbooks and evidence manifests.
package main

import "github.com/ppiankov/sectorbook/internal/cli"

func main() {
	cli.Execute()
}
