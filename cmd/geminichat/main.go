package main

import "github.com/diogo/geminichat/internal/commands"

func main() {
	commands.Execute()
}
