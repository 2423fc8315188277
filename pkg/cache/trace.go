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

package cache

import (
	"fmt"
	"io"

	"github.com/gmofishsauce/e20/pkg/sim"
)

// Status is the logged outcome of one access at one level. Stores
// always log SW; the hit/miss distinction is only traced for loads.
type Status int

const (
	Hit Status = iota
	Miss
	SW
)

func (s Status) String() string {
	switch s {
	case Hit:
		return "HIT"
	case Miss:
		return "MISS"
	default:
		return "SW"
	}
}

// Entry is one trace record: which cache, what happened, and the
// pc, address and row of the access.
type Entry struct {
	Cache  string
	Status Status
	PC     uint16
	Addr   uint16
	Row    int
}

func (e Entry) String() string {
	return fmt.Sprintf("%-8s pc:%5d\taddr:%5d\trow:%4d",
		e.Cache+" "+e.Status.String(), e.PC, e.Addr, e.Row)
}

// Hierarchy is the cache observer: up to two levels consulted in
// order, with trace records written as they happen. It implements
// sim.Observer.
type Hierarchy struct {
	levels []*level
	w      io.Writer
}

// New builds a hierarchy from one or two level configurations.
// The first is named L1, the second L2.
func New(w io.Writer, cfgs ...Config) *Hierarchy {
	h := &Hierarchy{w: w}
	for i, cfg := range cfgs {
		h.levels = append(h.levels, newLevel(fmt.Sprintf("L%d", i+1), cfg))
	}
	return h
}

// WriteSummary emits one configuration line per level. It is
// called once, before simulation begins.
func (h *Hierarchy) WriteSummary() {
	for _, l := range h.levels {
		fmt.Fprintf(h.w, "Cache %s has size %d, associativity %d, blocksize %d, rows %d\n",
			l.name, l.cfg.Size, l.cfg.Assoc, l.cfg.BlockSize, l.cfg.Rows())
	}
}

// Access feeds one data-memory access through the hierarchy. A
// load that hits in L1 never reaches L2; a store updates and logs
// every level unconditionally.
func (h *Hierarchy) Access(a sim.Access) {
	for _, l := range h.levels {
		row, tag := l.locate(a.Addr)
		hit := l.access(row, tag)
		status := SW
		if a.Kind == sim.Load {
			if hit {
				status = Hit
			} else {
				status = Miss
			}
		}
		fmt.Fprintln(h.w, Entry{Cache: l.name, Status: status, PC: a.PC, Addr: a.Addr, Row: row})
		if a.Kind == sim.Load && hit {
			break
		}
	}
}
