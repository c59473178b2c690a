package main

import "otl2everytime/cmd"

func main() {
	cmd.Execute()
}
