package main

import "lifeevents/internal/cli"

func main() {
	cli.Execute()
}
