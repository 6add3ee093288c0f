package main

import "universal-scraper/internal/cli"

func main() {
	cli.Execute()
}
