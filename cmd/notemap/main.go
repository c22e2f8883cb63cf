// NoteMap - Freeform Notes Organizer
//
// NoteMap turns an indented list of freeform notes into an outline grouped by
// category, linking nearby lines that share words.
package main

import (
	"os"

	"github.com/ccollicutt/notemap/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
