// Copyright © 2024 The Sonnet authors

package main

import "github.com/sonnetlang/sonnet/cmd"

func main() {
	cmd.Execute()
}
