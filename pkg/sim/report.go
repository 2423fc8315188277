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

package sim

import (
	"fmt"
	"io"
)

// WriteState writes the final-state report: the pc, the eight
// registers in decimal, and the first words of memory in hex,
// eight per row. This layout is the acceptance artifact for
// correctness testing and must not change.
func (m *Machine) WriteState(w io.Writer, words int) error {
	if _, err := fmt.Fprintln(w, "Final state:"); err != nil {
		return err
	}
	fmt.Fprintf(w, "\tpc=%5d\n", m.PC)
	for i, v := range m.Reg {
		fmt.Fprintf(w, "\t$%d=%5d\n", i, v)
	}
	line := ""
	for i := 0; i < words; i++ {
		line += fmt.Sprintf("%04x ", m.Mem[i])
		if i%8 == 7 {
			fmt.Fprintln(w, line)
			line = ""
		}
	}
	if line != "" {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
