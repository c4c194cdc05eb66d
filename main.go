package main

import "drive-delivery/cmd"

func main() {
	cmd.Execute()
}
