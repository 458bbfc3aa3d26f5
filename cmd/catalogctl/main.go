package main

import "github.com/kiruna-explorer/backend/cmd/catalogctl/cmd"

func main() {
	cmd.Execute()
}
