package main

import "dbcompare/cmd"

func main() {
	cmd.Execute()
}
