package main

import "github.com/LegacyCodeHQ/chronograph/cmd"

func main() {
	cmd.Execute()
}
