package main

import (
	"stakeview/internal/server"
)

func main() {
	server.ApiInit()
}
