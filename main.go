package main

import "github.com/jfmyers9/grooveshark/cmd"

func main() {
	cmd.Execute()
}
