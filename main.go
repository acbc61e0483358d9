package main

import "ffcrop/cmd"

func main() {
	cmd.Execute()
}
