package main

import "github.com/canopy-cad/canopy/cmd"

func main() {
	cmd.Execute()
}
