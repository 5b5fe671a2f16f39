package main

import "attendance-reconciler/cmd"

func main() {
	cmd.Execute()
}
