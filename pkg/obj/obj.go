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

// Package obj defines the E20 machine geometry and the textual
// machine code ("object") file format shared by the assembler
// and the simulator.
package obj

const (
	// NumRegs is the number of general purpose registers.
	NumRegs = 8
	// MemSize is the number of 16-bit words of memory.
	MemSize = 8192
	// MemMask folds any computed address into memory range.
	MemMask = MemSize - 1
	// LinkReg receives the return address of jal.
	LinkReg = 7
)

// SignExt7 sign-extends the low 7 bits of w to a full 16-bit
// two's-complement pattern. The result doubles as the unsigned
// fold used by slti: an immediate above 63 becomes imm-128,
// which modulo 65536 is the same bit pattern.
func SignExt7(w uint16) uint16 {
	w &= 0x7F
	if w > 63 {
		w |= 0xFF80
	}
	return w
}
