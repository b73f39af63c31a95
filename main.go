package main

import "animeapi/cmd"

func main() {
	cmd.Execute()
}
