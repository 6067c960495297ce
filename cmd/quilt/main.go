// Command quilt designs quilts on a grid of blocks and estimates log cabin
// fabric.
package main

import "github.com/mesh-intelligence/quiltboard/internal/cli"

func main() {
	cli.Execute()
}
