// Command sirda runs SIRDA epidemic simulations.
package main

import "github.com/sarchlab/sirda/sirda/cmd"

func main() {
	cmd.Execute()
}
