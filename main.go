package main

import "github.com/nickisanders/CPEService/cmd"

func main() {
	cmd.Execute()
}
