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

// Package asm assembles E20 assembly language into machine words.
//
// The language is line oriented. A '#' starts a comment. A line may
// carry labels ("name:"), one instruction, both, or nothing. Labels
// name the address of the next emitted word. Register operands are
// written $0..$7; immediates are decimal literals or label names.
// The pseudo-ops are movi (addi from $0), nop (a zero word), halt
// (a jump to its own address) and .fill (a literal data word).
package asm

import (
	"fmt"
	"strings"

	"github.com/gmofishsauce/e20/pkg/obj"
)

// statement is one source line after parsing. Lines that carry
// only labels or nothing have an empty mnemonic and emit no word.
type statement struct {
	line     int    // 1-based source line number
	text     string // source text, kept for the listing
	mnemonic string
	args     []string
	addr     uint16
	word     uint16
}

// Assembler holds the state of one assembly.
type Assembler struct {
	labels map[string]uint16
	stmts  []*statement
}

func New() *Assembler {
	return &Assembler{labels: make(map[string]uint16)}
}

// Assemble turns source text into machine words. The first pass
// parses lines and assigns addresses to labels; the second encodes
// each instruction, so labels may be used before they are defined.
func (a *Assembler) Assemble(src string) ([]uint16, error) {
	if err := a.parse(src); err != nil {
		return nil, err
	}
	var words []uint16
	for _, st := range a.stmts {
		if st.mnemonic == "" {
			continue
		}
		word, err := a.encode(st)
		if err != nil {
			return nil, err
		}
		st.word = word
		words = append(words, word)
	}
	return words, nil
}

// parse is the first pass: split lines into statements, count
// addresses, and bind labels.
func (a *Assembler) parse(src string) error {
	addr := 0
	for n, raw := range strings.Split(src, "\n") {
		line := raw
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		st := &statement{line: n + 1, text: strings.TrimSpace(raw)}

		// Strip leading labels. More than one label may name the
		// same address.
		rest := strings.ToLower(line)
		for rest != "" {
			first, tail := splitField(rest)
			if !strings.HasSuffix(first, ":") {
				break
			}
			label := strings.TrimSuffix(first, ":")
			if label == "" {
				return fmt.Errorf("line %d: empty label", st.line)
			}
			if _, dup := a.labels[label]; dup {
				return fmt.Errorf("line %d: duplicate label %q", st.line, label)
			}
			a.labels[label] = uint16(addr)
			rest = tail
		}

		if rest != "" {
			st.mnemonic, rest = splitField(rest)
			for _, arg := range strings.Split(rest, ",") {
				if arg = strings.TrimSpace(arg); arg != "" {
					st.args = append(st.args, arg)
				}
			}
			if addr >= obj.MemSize {
				return fmt.Errorf("line %d: %w", st.line, obj.ErrTooBig)
			}
			st.addr = uint16(addr)
			addr++
		}
		a.stmts = append(a.stmts, st)
	}
	return nil
}

// splitField returns the first whitespace-delimited field and the
// trimmed remainder.
func splitField(s string) (string, string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}
