package main

import "example.com/relieftrack/services/tracker/cmd"

func main() {
	cmd.Execute()
}
