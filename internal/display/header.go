package display

import (
	"fmt"
	"io"

	"github.com/backmassage/qonvert/internal/term"
)

// PrintHeader announces the batch and the codec in use, if any.
func PrintHeader(w io.Writer, count int, codec string) {
	if codec == "" {
		fmt.Fprintf(w, "Converting %d file(s):\n", count)
		return
	}
	fmt.Fprintf(w, "Converting %d file(s) with %s:\n", count, term.Paint(term.Cyan, codec))
}
