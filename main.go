package main

import "github.com/bgraf/trackmix/cmd"

func main() {
	cmd.Execute()
}
