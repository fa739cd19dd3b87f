// kk is a git-aware directory listing.
package main

import "github.com/albertocavalcante/kk/cmd/kk/internal/cli"

func main() {
	cli.Execute()
}
