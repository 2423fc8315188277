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

// Package sim defines the E20 simulator.
package sim

import (
	"errors"
	"fmt"

	"github.com/gmofishsauce/e20/pkg/obj"
)

// AccessKind distinguishes data-memory loads from stores.
type AccessKind int

const (
	Load AccessKind = iota
	Store
)

func (k AccessKind) String() string {
	if k == Load {
		return "LOAD"
	}
	return "STORE"
}

// Access describes one data-memory access made by lw or sw.
// Addr is already folded into memory range; PC is the address
// of the instruction that made the access.
type Access struct {
	Addr uint16
	Kind AccessKind
	PC   uint16
}

// Observer is notified of each data-memory access, in program
// order, after the access has taken architectural effect.
type Observer interface {
	Access(Access)
}

// Machine is the complete architectural state of an E20.
// The zero Machine is a reset machine with empty memory.
type Machine struct {
	PC     uint16
	Reg    [obj.NumRegs]uint16
	Mem    [obj.MemSize]uint16
	halted bool
}

func New() *Machine {
	return &Machine{}
}

// Load copies a program into memory starting at address 0.
func (m *Machine) Load(words []uint16) {
	copy(m.Mem[:], words)
}

// Halted reports whether the machine has executed a self-targeting
// unconditional jump.
func (m *Machine) Halted() bool {
	return m.halted
}

// ErrStepLimit is returned by Run when the optional step limit is
// exceeded. It is a tooling guard, not an architectural condition.
var ErrStepLimit = errors.New("step limit exceeded")

// Run steps the machine until it halts, reporting each data-memory
// access to obs. A limit of 0 runs without bound.
func (m *Machine) Run(obs Observer, limit uint64) error {
	var steps uint64
	for !m.halted {
		if limit != 0 && steps >= limit {
			return fmt.Errorf("%w after %d steps", ErrStepLimit, steps)
		}
		acc, ok := m.Step()
		if ok && obs != nil {
			obs.Access(acc)
		}
		steps++
	}
	return nil
}
