package main

import "github.com/alexiusacademia/wingbox/cmd"

func main() {
	cmd.Execute()
}
