package main

import "github.com/Rorical/MedAssist/cmd"

func main() {
	cmd.Execute()
}
