package main

import "videohub/cmd/cli/command"

func main() {
	command.Execute()
}
