package main

import "github.com/jrsteele09/callwa-dashboard/internal/cli"

func main() {
	cli.Execute()
}
