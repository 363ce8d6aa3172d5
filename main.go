// SPDX-License-Identifier: MPL-2.0

// spit expands short names into longer stored text.
package main

import cmd "github.com/spit-cli/spit/cmd/spit"

func main() {
	cmd.Execute()
}
