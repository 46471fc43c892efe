// Copyright © 2026 Notemon

package main

import (
	"github.com/notemon/notemon/cmd/notemon/cmd"
)

func main() {
	cmd.Execute()
}
