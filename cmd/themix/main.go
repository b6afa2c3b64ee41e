// Themix - derive a desktop theme from a wallpaper
//
// Themix extracts the dominant colours of a wallpaper and writes a complete,
// contrast-checked palette to a theme directory for templates to consume.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/themix/internal/cli"

func main() {
	cli.Execute()
}
