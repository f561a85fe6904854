package main

import "github.com/inovacc/bookstore/cmd"

func main() {
	cmd.Execute()
}
