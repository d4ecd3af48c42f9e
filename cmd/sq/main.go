package main

import "github.com/OGaCu/madventure/cmd/sq/root"

func main() {
	root.Execute()
}
