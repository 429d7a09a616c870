package main

import "github.com/chris/grafik/cmd"

func main() {
	cmd.Execute()
}
