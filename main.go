package main

import "coucou-server/cmd/server"

func main() {
	server.Init()
	server.Run()
}
