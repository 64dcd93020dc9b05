package main

import "github.com/panyam/skyscan/cmd/skyscan/commands"

func main() {
	commands.Execute()
}
