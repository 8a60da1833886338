package main

import "github.com/guillerg01/date-checker/internal/cli"

func main() {
	cli.Execute()
}
