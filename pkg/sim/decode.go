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

import "github.com/gmofishsauce/e20/pkg/obj"

// Opcode is the 3-bit major opcode at bits 15:13.
type Opcode uint16

const (
	OpAlu  Opcode = iota // add/sub/or/and/slt/jr, selected by Fn
	OpAddi               // addi and its movi spelling
	OpJ
	OpJal
	OpLw
	OpSw
	OpJeq
	OpSlti
)

// Function codes for OpAlu, bits 3:0.
const (
	FnAdd = 0
	FnSub = 1
	FnOr  = 2
	FnAnd = 3
	FnSlt = 4
	FnJr  = 8
)

// Instr is one decoded instruction word. Every field is extracted
// unconditionally; each format reads the fields it defines and
// ignores the rest. Imm holds the 7-bit immediate already extended
// to its 16-bit pattern.
type Instr struct {
	Op     Opcode
	RegA   uint16 // bits 12:10
	RegB   uint16 // bits 9:7
	RegC   uint16 // bits 6:4, destination of the three-register forms
	Fn     uint16 // bits 3:0
	Imm    uint16
	Target uint16 // bits 12:0, absolute jump target
}

// Decode splits an instruction word into its fields. Every 16-bit
// pattern decodes; there is no illegal-instruction case.
func Decode(word uint16) Instr {
	return Instr{
		Op:     Opcode(word >> 13),
		RegA:   (word >> 10) & 7,
		RegB:   (word >> 7) & 7,
		RegC:   (word >> 4) & 7,
		Fn:     word & 0xF,
		Imm:    obj.SignExt7(word),
		Target: word & obj.MemMask,
	}
}
