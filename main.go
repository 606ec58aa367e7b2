package main

import "github.com/lepinkainen/bookdice/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
