package main

import "mboard/cmd/mboard/commands"

func main() {
	commands.Execute()
}
