// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Parse reads a program in text format: decimal integers separated by commas.
// White space around values is ignored, and so is a trailing comma.
func Parse(r io.Reader) ([]Cell, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	if n := len(fields) - 1; n > 0 && strings.TrimSpace(fields[n]) == "" {
		fields = fields[:n]
	}
	prog := make([]Cell, len(fields))
	for k, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d", k)
		}
		prog[k] = Cell(v)
	}
	return prog, nil
}

// Load loads a program in text format from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	prog, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return prog, nil
}

// Write writes cells to w in program text format, followed by a new line.
func Write(w io.Writer, cells []Cell) error {
	ew := ici.NewErrWriter(w)
	var b []byte
	for k, v := range cells {
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if len(b) >= 4096 {
			ew.Write(b)
			b = b[:0]
		}
	}
	b = append(b, '\n')
	ew.Write(b)
	return ew.Err
}

// Save saves cells to file fileName in program text format. The file is
// removed if an error occurs.
func Save(fileName string, cells []Cell) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if e := w.Flush(); err == nil && e != nil {
			err = errors.Wrap(e, "flush failed")
		}
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close failed")
		}
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return errors.Wrap(Write(w, cells), "save failed")
}

// EncodeString returns the ASCII input cells for string s, one Cell per byte.
func EncodeString(s string) []Cell {
	c := make([]Cell, len(s))
	for k := 0; k < len(s); k++ {
		c[k] = Cell(s[k])
	}
	return c
}

// DecodeString converts output cells to a string. It stops at the first cell
// that is not a valid ASCII character and returns the number of cells
// decoded.
func DecodeString(cells []Cell) (string, int) {
	b := make([]byte, 0, len(cells))
	for _, c := range cells {
		if c < 0 || c > unicode.MaxASCII {
			break
		}
		b = append(b, byte(c))
	}
	return string(b), len(b)
}
