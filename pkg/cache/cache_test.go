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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/e20/pkg/sim"
)

func TestParseSpec(t *testing.T) {
	cfgs, err := ParseSpec("64,4,8")
	require.NoError(t, err)
	require.Len(t, cfgs, 1)
	assert.Equal(t, Config{Size: 64, Assoc: 4, BlockSize: 8}, cfgs[0])
	assert.Equal(t, 2, cfgs[0].Rows())

	cfgs, err = ParseSpec("32,2,2,128,4,4")
	require.NoError(t, err)
	require.Len(t, cfgs, 2)
	assert.Equal(t, 8, cfgs[0].Rows())
	assert.Equal(t, 8, cfgs[1].Rows())
}

func TestParseSpecErrors(t *testing.T) {
	bad := []string{
		"",
		"64,4",
		"64,4,8,16",
		"64,4,8,16,2,4,1",
		"64,x,8",
		"4,8,4", // size too small for one full row
		"64,0,8",
		"64,4,0",
	}
	for _, spec := range bad {
		_, err := ParseSpec(spec)
		assert.ErrorIs(t, err, ErrBadSpec, "spec %q", spec)
	}
}

func TestLocate(t *testing.T) {
	l := newLevel("L1", Config{Size: 16, Assoc: 2, BlockSize: 2}) // 4 rows
	tests := []struct {
		addr     uint16
		row, tag int
	}{
		{0, 0, 0},
		{1, 0, 0},
		{2, 1, 0},
		{7, 3, 0},
		{8, 0, 1},
		{13, 2, 1},
	}
	for _, tc := range tests {
		row, tag := l.locate(tc.addr)
		assert.Equal(t, tc.row, row, "row of %d", tc.addr)
		assert.Equal(t, tc.tag, tag, "tag of %d", tc.addr)
	}
}

func TestEvictionIsFIFOWithoutHits(t *testing.T) {
	// Associativity 2: the third distinct tag evicts the first.
	l := newLevel("L1", Config{Size: 8, Assoc: 2, BlockSize: 1}) // 4 rows
	assert.False(t, l.access(0, 10))
	assert.False(t, l.access(0, 20))
	assert.False(t, l.access(0, 30))
	assert.Equal(t, []int{20, 30}, l.rows[0])
	assert.False(t, l.access(0, 10), "the evicted tag must miss")
}

func TestHitPromotesRecency(t *testing.T) {
	l := newLevel("L1", Config{Size: 8, Assoc: 2, BlockSize: 1})
	l.access(0, 10)
	l.access(0, 20)
	assert.True(t, l.access(0, 10), "resident tag must hit")
	// 20 is now least recently used, so the next miss evicts it.
	l.access(0, 30)
	assert.Equal(t, []int{10, 30}, l.rows[0])
}

func TestTagSetBoundedByAssociativity(t *testing.T) {
	l := newLevel("L1", Config{Size: 16, Assoc: 4, BlockSize: 1})
	for tag := 0; tag < 100; tag++ {
		l.access(0, tag)
		assert.LessOrEqual(t, len(l.rows[0]), 4)
	}
}

func TestEntryFormat(t *testing.T) {
	e := Entry{Cache: "L1", Status: Hit, PC: 5, Addr: 204, Row: 2}
	assert.Equal(t, "L1 HIT   pc:    5\taddr:  204\trow:   2", e.String())
	e = Entry{Cache: "L2", Status: SW, PC: 4095, Addr: 8191, Row: 63}
	assert.Equal(t, "L2 SW    pc: 4095\taddr: 8191\trow:  63", e.String())
}

func TestWriteSummary(t *testing.T) {
	var sb strings.Builder
	h := New(&sb, Config{Size: 64, Assoc: 2, BlockSize: 4}, Config{Size: 256, Assoc: 4, BlockSize: 4})
	h.WriteSummary()
	want := "Cache L1 has size 64, associativity 2, blocksize 4, rows 8\n" +
		"Cache L2 has size 256, associativity 4, blocksize 4, rows 16\n"
	assert.Equal(t, want, sb.String())
}

func traceLines(sb *strings.Builder) []string {
	return strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
}

func TestLoadHitShortCircuitsL2(t *testing.T) {
	var sb strings.Builder
	h := New(&sb, Config{Size: 8, Assoc: 2, BlockSize: 1}, Config{Size: 32, Assoc: 2, BlockSize: 2})

	h.Access(sim.Access{Addr: 100, Kind: sim.Load, PC: 1})
	h.Access(sim.Access{Addr: 100, Kind: sim.Load, PC: 2})

	lines := traceLines(&sb)
	require.Len(t, lines, 3, "cold miss logs both levels, the hit only L1")
	assert.True(t, strings.HasPrefix(lines[0], "L1 MISS"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "L2 MISS"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "L1 HIT"), lines[2])
}

func TestLoadMissConsultsL2(t *testing.T) {
	var sb strings.Builder
	h := New(&sb, Config{Size: 2, Assoc: 1, BlockSize: 1}, Config{Size: 32, Assoc: 2, BlockSize: 2})

	h.Access(sim.Access{Addr: 0, Kind: sim.Load, PC: 0})
	h.Access(sim.Access{Addr: 2, Kind: sim.Load, PC: 1}) // evicts addr 0 from L1 row 0
	h.Access(sim.Access{Addr: 0, Kind: sim.Load, PC: 2}) // L1 miss, L2 hit

	lines := traceLines(&sb)
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[4], "L1 MISS"), lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "L2 HIT"), lines[5])
}

func TestStoreLogsEveryLevel(t *testing.T) {
	var sb strings.Builder
	h := New(&sb, Config{Size: 8, Assoc: 2, BlockSize: 1}, Config{Size: 32, Assoc: 2, BlockSize: 2})

	// Stores never short-circuit, hit or not.
	h.Access(sim.Access{Addr: 100, Kind: sim.Store, PC: 1})
	h.Access(sim.Access{Addr: 100, Kind: sim.Store, PC: 2})

	lines := traceLines(&sb)
	require.Len(t, lines, 4)
	for i, line := range lines {
		level := "L1"
		if i%2 == 1 {
			level = "L2"
		}
		assert.True(t, strings.HasPrefix(line, level+" SW"), "line %d: %s", i, line)
	}
}

func TestStoreStillManagesTags(t *testing.T) {
	// SW hides hit/miss in the trace but the tag sets move the
	// same way they do for loads.
	var sb strings.Builder
	h := New(&sb, Config{Size: 8, Assoc: 2, BlockSize: 1})

	h.Access(sim.Access{Addr: 0, Kind: sim.Store, PC: 0})
	h.Access(sim.Access{Addr: 0, Kind: sim.Load, PC: 1})

	lines := traceLines(&sb)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "L1 HIT"), "load after store to same block must hit")
}

func TestSingleLevelTrace(t *testing.T) {
	var sb strings.Builder
	h := New(&sb, Config{Size: 4, Assoc: 1, BlockSize: 2})

	h.Access(sim.Access{Addr: 204, Kind: sim.Store, PC: 3})
	h.Access(sim.Access{Addr: 205, Kind: sim.Load, PC: 4})

	lines := traceLines(&sb)
	require.Len(t, lines, 2)
	assert.Equal(t, "L1 SW    pc:    3\taddr:  204\trow:   0", lines[0])
	assert.Equal(t, "L1 HIT   pc:    4\taddr:  205\trow:   0", lines[1])
}
