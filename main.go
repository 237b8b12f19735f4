package main

import "github.com/tranvictor/schoolfactory/cmd"

func main() {
	cmd.Execute()
}
