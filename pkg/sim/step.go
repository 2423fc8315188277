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

// Step executes exactly one instruction. ok reports that the
// instruction made a data-memory access, in which case acc holds
// the access tuple for the cache observer. A halted machine does
// not step.
//
// All register arithmetic wraps in uint16, which is the required
// fold into [0,65535]; addresses are additionally masked into
// [0,8191]. Register 0 is never written: any instruction whose
// destination field is 0 only advances the pc.
func (m *Machine) Step() (acc Access, ok bool) {
	if m.halted {
		return
	}
	m.PC &= obj.MemMask
	in := Decode(m.Mem[m.PC])

	switch in.Op {
	case OpAlu:
		if in.Fn == FnJr {
			// jr jumps regardless of the destination field.
			m.PC = m.Reg[in.RegA]
			return
		}
		if in.RegC != 0 {
			a, b := m.Reg[in.RegA], m.Reg[in.RegB]
			switch in.Fn {
			case FnAdd:
				m.Reg[in.RegC] = a + b
			case FnSub:
				m.Reg[in.RegC] = a - b
			case FnOr:
				m.Reg[in.RegC] = a | b
			case FnAnd:
				m.Reg[in.RegC] = a & b
			case FnSlt:
				m.Reg[in.RegC] = boolToWord(a < b)
			default:
				// Unassigned function codes write nothing.
			}
		}
		m.PC++

	case OpAddi:
		if in.RegB != 0 {
			m.Reg[in.RegB] = m.Reg[in.RegA] + in.Imm
		}
		m.PC++

	case OpJ:
		// A jump to its own address is the halt convention. The pc
		// must not change, so the check precedes the assignment.
		if in.Target == m.PC {
			m.halted = true
			return
		}
		m.PC = in.Target

	case OpJal:
		m.Reg[obj.LinkReg] = (m.PC + 1) & obj.MemMask
		m.PC = in.Target

	case OpLw:
		if in.RegB == 0 {
			// The load is elided entirely: no register write, no
			// memory access, nothing for the cache observer.
			m.PC++
			return
		}
		addr := (m.Reg[in.RegA] + in.Imm) & obj.MemMask
		acc, ok = Access{Addr: addr, Kind: Load, PC: m.PC}, true
		m.Reg[in.RegB] = m.Mem[addr]
		m.PC++

	case OpSw:
		addr := (m.Reg[in.RegA] + in.Imm) & obj.MemMask
		acc, ok = Access{Addr: addr, Kind: Store, PC: m.PC}, true
		m.Mem[addr] = m.Reg[in.RegB]
		m.PC++

	case OpJeq:
		if m.Reg[in.RegA] == m.Reg[in.RegB] {
			m.PC = m.PC + 1 + in.Imm
		} else {
			m.PC++
		}

	case OpSlti:
		if in.RegB != 0 {
			// The immediate's two's-complement pattern is compared
			// as an unsigned 16-bit value, unlike addi/lw/sw.
			m.Reg[in.RegB] = boolToWord(m.Reg[in.RegA] < in.Imm)
		}
		m.PC++
	}
	return
}

func boolToWord(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
