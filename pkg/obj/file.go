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

package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// An E20 machine code file holds one memory word per line, in strict
// ascending address order starting at 0:
//
//	ram[0] = 16'b0010000000000101;
//
// Anything after the semicolon is ignored.

var (
	// ErrBadLine means a line does not match the ram[...] pattern.
	ErrBadLine = errors.New("can't parse machine code line")
	// ErrBadSequence means addresses are not sequential from 0.
	ErrBadSequence = errors.New("memory addresses out of sequence")
	// ErrTooBig means the program has more words than memory.
	ErrTooBig = errors.New("program too big for memory")
)

var lineRE = regexp.MustCompile(`^ram\[(\d+)\] = 16'b([01]+);`)

// Read parses a machine code file into at most MemSize words.
func Read(r io.Reader) ([]uint16, error) {
	var words []uint16
	next := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		m := lineRE.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: %q", ErrBadLine, line)
		}
		addr, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadLine, line)
		}
		word, err := strconv.ParseUint(m[2], 2, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadLine, line)
		}
		if addr != next {
			return nil, fmt.Errorf("%w: got %d, expected %d", ErrBadSequence, addr, next)
		}
		if addr >= MemSize {
			return nil, fmt.Errorf("%w (%d words)", ErrTooBig, MemSize)
		}
		words = append(words, uint16(word))
		next++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Write emits words in the machine code file format, one line
// per word starting at address 0.
func Write(w io.Writer, words []uint16) error {
	for addr, word := range words {
		if _, err := fmt.Fprintf(w, "ram[%d] = 16'b%016b;\n", addr, word); err != nil {
			return err
		}
	}
	return nil
}
