// SPDX-License-Identifier: MIT

package app

import (
	"fmt"
	"io"

	"github.com/katalvlaran/gridpath/session"
)

// clearScreen homes the cursor and clears the terminal.
const clearScreen = "\033[H\033[2J"

// renderer redraws the grid for every step frame.
type renderer struct {
	w io.Writer
}

func newRenderer(w io.Writer) *renderer { return &renderer{w: w} }

func (r *renderer) frame(f session.Frame) {
	if !f.Stepped {
		return
	}
	fmt.Fprint(r.w, clearScreen)
	fmt.Fprintln(r.w, f.Snapshot)
	fmt.Fprintf(r.w, "step %d  %s\n", f.Seq, f.State)
}
