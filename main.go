package main

import (
	"github.com/tjjd4/evm-mcp-server/cmd"
)

func main() {
	cmd.Execute()
}
