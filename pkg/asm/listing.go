/*
Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package asm

import (
	"fmt"
	"io"
	"sort"
)

// WriteListing dumps the symbol table and the assembled words of
// the most recent Assemble call, one source line per row.
func (a *Assembler) WriteListing(w io.Writer) {
	names := make([]string, 0, len(a.labels))
	for n := range a.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "%-16s %s\n", "SYMBOL", "VALUE")
	for _, n := range names {
		fmt.Fprintf(w, "%-16s %d\n", n, a.labels[n])
	}

	fmt.Fprintf(w, "\n%4s  %-16s  %s\n", "ADDR", "WORD", "SOURCE")
	for _, st := range a.stmts {
		if st.mnemonic == "" {
			if st.text != "" {
				fmt.Fprintf(w, "%4s  %-16s  %s\n", "", "", st.text)
			}
			continue
		}
		fmt.Fprintf(w, "%4d  %016b  %s\n", st.addr, st.word, st.text)
	}
}
