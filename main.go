// Command scheme is a tree-walking interpreter for a subset of Scheme.
package main

import "github.com/724399396/write-your-self-scheme/cmd"

func main() {
	cmd.Execute()
}
