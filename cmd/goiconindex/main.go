package main

import "github.com/dbsmedya/goiconindex/cmd/goiconindex/cmd"

func main() {
	cmd.Execute()
}
