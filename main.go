package main

import "github.com/sgonzalez/retail-management/cmd"

func main() {
	cmd.Execute()
}
