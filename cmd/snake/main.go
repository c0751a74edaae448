package main

import "github.com/battlesnakeio/classic/cmd/snake/commands"

func main() {
	commands.Execute()
}
