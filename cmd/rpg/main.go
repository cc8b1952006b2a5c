package main

import "github.com/jwebster45206/rpg-engine/cmd/rpg/root"

func main() {
	root.Execute()
}
