package main

import "github.com/chrisdamba/cafesim/cmd"

func main() {
	cmd.Execute()
}
