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

// Package cache models a one- or two-level set-associative cache
// hierarchy observing the simulator's data-memory accesses. The
// model is purely observational: it tracks tags, hits, misses and
// evictions but never holds data and never affects execution.
package cache

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Config parameterizes one cache level. Size and BlockSize are in
// memory words. All three are fixed for the lifetime of a run.
type Config struct {
	Size      int
	Assoc     int
	BlockSize int
}

// Rows derives the number of rows, truncating any fraction.
func (c Config) Rows() int {
	return c.Size / (c.BlockSize * c.Assoc)
}

// ErrBadSpec means a cache specification string is unusable.
var ErrBadSpec = errors.New("invalid cache configuration")

// ParseSpec parses "size,assoc,blocksize" for one level or
// "size,assoc,blocksize,size,assoc,blocksize" for an L1 fed by an
// L2. Any other shape, or a combination yielding no rows, is an
// error.
func ParseSpec(spec string) ([]Config, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 && len(parts) != 6 {
		return nil, fmt.Errorf("%w: want 3 or 6 values, got %d", ErrBadSpec, len(parts))
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadSpec, p)
		}
		nums[i] = n
	}
	var cfgs []Config
	for i := 0; i < len(nums); i += 3 {
		c := Config{Size: nums[i], Assoc: nums[i+1], BlockSize: nums[i+2]}
		if c.Assoc < 1 || c.BlockSize < 1 || c.Rows() < 1 {
			return nil, fmt.Errorf("%w: %d,%d,%d has no rows", ErrBadSpec, c.Size, c.Assoc, c.BlockSize)
		}
		cfgs = append(cfgs, c)
	}
	return cfgs, nil
}

// level is one cache level. Each row is a recency-ordered tag set:
// head is least recently used, tail most recently used, and the
// length never exceeds the associativity.
type level struct {
	name string
	cfg  Config
	rows [][]int
}

func newLevel(name string, cfg Config) *level {
	return &level{name: name, cfg: cfg, rows: make([][]int, cfg.Rows())}
}

// locate derives the row and tag of a word address.
func (l *level) locate(addr uint16) (row, tag int) {
	block := int(addr) / l.cfg.BlockSize
	return block % len(l.rows), block / len(l.rows)
}

// access looks tag up in row and reports a hit. A hit promotes the
// tag to most recently used; a miss inserts it, evicting the head
// of a full set first.
func (l *level) access(row, tag int) bool {
	set := l.rows[row]
	for i, t := range set {
		if t == tag {
			set = append(set[:i], set[i+1:]...)
			l.rows[row] = append(set, tag)
			return true
		}
	}
	if len(set) == l.cfg.Assoc {
		n := copy(set, set[1:])
		set = set[:n]
	}
	l.rows[row] = append(set, tag)
	return false
}
