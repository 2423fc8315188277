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
	"strconv"
	"strings"

	"github.com/gmofishsauce/e20/pkg/sim"
)

// encode is the second pass for one statement. Labels are all
// bound by now, so every operand can be resolved.
func (a *Assembler) encode(st *statement) (uint16, error) {
	switch st.mnemonic {
	case "add", "sub", "or", "and", "slt":
		// dst, srcA, srcB
		r, err := a.regs(st, 3)
		if err != nil {
			return 0, err
		}
		fn := map[string]uint16{
			"add": sim.FnAdd, "sub": sim.FnSub, "or": sim.FnOr,
			"and": sim.FnAnd, "slt": sim.FnSlt,
		}[st.mnemonic]
		return word(sim.OpAlu, r[1], r[2], r[0]<<4|fn), nil

	case "jr":
		r, err := a.regs(st, 1)
		if err != nil {
			return 0, err
		}
		return word(sim.OpAlu, r[0], 0, sim.FnJr), nil

	case "addi", "slti":
		// dst, src, imm
		if err := st.want(3); err != nil {
			return 0, err
		}
		dst, err := a.reg(st, st.args[0])
		if err != nil {
			return 0, err
		}
		src, err := a.reg(st, st.args[1])
		if err != nil {
			return 0, err
		}
		imm, err := a.imm7(st, st.args[2])
		if err != nil {
			return 0, err
		}
		op := sim.OpAddi
		if st.mnemonic == "slti" {
			op = sim.OpSlti
		}
		return word(op, src, dst, imm), nil

	case "movi":
		// dst, imm; an addi with $0 as the source.
		if err := st.want(2); err != nil {
			return 0, err
		}
		dst, err := a.reg(st, st.args[0])
		if err != nil {
			return 0, err
		}
		imm, err := a.imm7(st, st.args[1])
		if err != nil {
			return 0, err
		}
		return word(sim.OpAddi, 0, dst, imm), nil

	case "lw", "sw":
		// lw $dst, imm($addr) / sw $src, imm($addr)
		if err := st.want(2); err != nil {
			return 0, err
		}
		data, err := a.reg(st, st.args[0])
		if err != nil {
			return 0, err
		}
		base, imm, err := a.memOperand(st, st.args[1])
		if err != nil {
			return 0, err
		}
		op := sim.OpLw
		if st.mnemonic == "sw" {
			op = sim.OpSw
		}
		return word(op, base, data, imm), nil

	case "j", "jal":
		if err := st.want(1); err != nil {
			return 0, err
		}
		target, err := a.imm13(st, st.args[0])
		if err != nil {
			return 0, err
		}
		op := sim.OpJ
		if st.mnemonic == "jal" {
			op = sim.OpJal
		}
		return uint16(op)<<13 | target, nil

	case "jeq":
		// regA, regB, target; the target assembles to an offset
		// relative to the following instruction.
		if err := st.want(3); err != nil {
			return 0, err
		}
		ra, err := a.reg(st, st.args[0])
		if err != nil {
			return 0, err
		}
		rb, err := a.reg(st, st.args[1])
		if err != nil {
			return 0, err
		}
		target, err := a.value(st, st.args[2])
		if err != nil {
			return 0, err
		}
		rel := target - int(st.addr) - 1
		if rel < -64 || rel > 63 {
			return 0, fmt.Errorf("line %d: jeq target out of range (offset %d)", st.line, rel)
		}
		return word(sim.OpJeq, ra, rb, uint16(rel)&0x7F), nil

	case "nop":
		return 0, st.want(0)

	case "halt":
		// The halt convention: a j whose target is its own address.
		return uint16(sim.OpJ)<<13 | st.addr, st.want(0)

	case ".fill":
		if err := st.want(1); err != nil {
			return 0, err
		}
		v, err := a.value(st, st.args[0])
		if err != nil {
			return 0, err
		}
		if v < -32768 || v > 65535 {
			return 0, fmt.Errorf("line %d: .fill value %d out of range", st.line, v)
		}
		return uint16(v), nil
	}
	return 0, fmt.Errorf("line %d: unknown instruction %q", st.line, st.mnemonic)
}

// word packs the common three-field layout: opcode, a register at
// bits 12:10, a register at bits 9:7, and low bits as given.
func word(op sim.Opcode, regA, regB, low uint16) uint16 {
	return uint16(op)<<13 | regA<<10 | regB<<7 | low
}

func (st *statement) want(n int) error {
	if len(st.args) != n {
		return fmt.Errorf("line %d: %s wants %d operands, got %d",
			st.line, st.mnemonic, n, len(st.args))
	}
	return nil
}

// reg parses a register operand, with or without the $ sigil.
func (a *Assembler) reg(st *statement, s string) (uint16, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "$"))
	if err != nil || n < 0 || n > 7 {
		return 0, fmt.Errorf("line %d: bad register %q", st.line, s)
	}
	return uint16(n), nil
}

// regs parses exactly n register operands.
func (a *Assembler) regs(st *statement, n int) ([]uint16, error) {
	if err := st.want(n); err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i, s := range st.args {
		r, err := a.reg(st, s)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// value resolves an operand that may be a label or a numeric
// literal.
func (a *Assembler) value(st *statement, s string) (int, error) {
	if v, ok := a.labels[s]; ok {
		return int(v), nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("line %d: undefined label or bad number %q", st.line, s)
	}
	return int(n), nil
}

// imm7 resolves a 7-bit immediate field. Signed literals take
// -64..63; label values and unsigned literals up to 127 encode as
// their low 7 bits, which is what the signed decode recovers.
func (a *Assembler) imm7(st *statement, s string) (uint16, error) {
	v, err := a.value(st, s)
	if err != nil {
		return 0, err
	}
	if v < -64 || v > 127 {
		return 0, fmt.Errorf("line %d: immediate %d does not fit in 7 bits", st.line, v)
	}
	return uint16(v) & 0x7F, nil
}

// imm13 resolves a 13-bit jump target.
func (a *Assembler) imm13(st *statement, s string) (uint16, error) {
	v, err := a.value(st, s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 8191 {
		return 0, fmt.Errorf("line %d: jump target %d does not fit in 13 bits", st.line, v)
	}
	return uint16(v), nil
}

// memOperand parses the imm($reg) form of lw and sw. The offset
// may be empty, a literal, or a label.
func (a *Assembler) memOperand(st *statement, s string) (base, imm uint16, err error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return 0, 0, fmt.Errorf("line %d: bad memory operand %q", st.line, s)
	}
	base, err = a.reg(st, s[open+1:len(s)-1])
	if err != nil {
		return 0, 0, err
	}
	if off := strings.TrimSpace(s[:open]); off != "" {
		imm, err = a.imm7(st, off)
	}
	return base, imm, err
}
