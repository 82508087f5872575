package main

import "pedalbuild/cmd"

func main() {
	cmd.Execute()
}
