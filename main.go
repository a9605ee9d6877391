// SPDX-License-Identifier: MPL-2.0

package main

import cmd "devaux-cli/cmd/devaux"

func main() {
	cmd.Execute()
}
