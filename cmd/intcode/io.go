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

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// parseCells parses a list of integers separated by commas or white space.
func parseCells(s string) ([]vm.Cell, error) {
	f := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	var c []vm.Cell
	for _, v := range f {
		n, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad value %q", v)
		}
		c = append(c, vm.Cell(n))
	}
	return c, nil
}

func traceTo(w io.Writer) vm.TraceFunc {
	return func(i *vm.Instance, in *vm.Instruction) {
		fmt.Fprintf(w, "% 10d\t%s\n", i.PC, asm.Format(in))
	}
}

// output writes machine output values to w. In ASCII mode, values in the ASCII
// range are written as characters, and other values as decimal numbers on
// their own line.
type output struct {
	w     *bufio.Writer
	ew    *ici.ErrWriter
	ascii bool
	bol   bool
}

func newOutput(w io.Writer, ascii bool) *output {
	o := &output{ew: ici.NewErrWriter(w), ascii: ascii, bol: true}
	o.w = bufio.NewWriter(o.ew)
	return o
}

func (o *output) write(v vm.Cell) {
	if o.ascii {
		if s, n := vm.DecodeString([]vm.Cell{v}); n > 0 {
			o.w.WriteString(s)
			o.bol = s == "\n"
			return
		}
		if !o.bol {
			o.w.WriteByte('\n')
		}
	}
	o.w.WriteString(strconv.FormatInt(int64(v), 10))
	o.w.WriteByte('\n')
	o.bol = true
}

func (o *output) Flush() error {
	if err := o.w.Flush(); err != nil {
		return err
	}
	return o.ew.Err
}

// step runs i until it suspends or halts, writing output values as they are
// produced.
func step(i *vm.Instance, o *output) (vm.State, error) {
	for {
		r, err := i.Step()
		if err != nil {
			return r.State, err
		}
		if r.HasOutput {
			o.write(r.Output)
		}
		if r.State != vm.Runnable {
			return r.State, nil
		}
	}
}

// readInput reads one line of input and converts it to machine input values.
// In ASCII mode, the line, including its terminating newline, is fed to the
// machine as is. Otherwise it is parsed as a list of integers. Lines that do
// not parse are reported and skipped.
func (a *app) readInput(s *bufio.Scanner, prompt bool) ([]vm.Cell, error) {
	for {
		if prompt {
			io.WriteString(a.stdout, "? ")
		}
		if !s.Scan() {
			if err := s.Err(); err != nil {
				return nil, errors.Wrap(err, "read failed")
			}
			return nil, io.EOF
		}
		line := s.Text()
		if a.ascii {
			return vm.EncodeString(line + "\n"), nil
		}
		v, err := parseCells(line)
		if err != nil {
			fmt.Fprintln(a.stderr, err)
			continue
		}
		if len(v) > 0 {
			return v, nil
		}
	}
}

// run runs a single machine, reading input from stdin whenever it runs out of
// queued values.
func (a *app) run(ctx context.Context, prog []vm.Cell) (err error) {
	opts := a.options(ctx)
	if len(a.input) > 0 {
		opts = append(opts, vm.Input(a.input...))
	}
	i, err := vm.New(prog, opts...)
	if err != nil {
		return err
	}
	a.i = i
	o := newOutput(a.stdout, a.ascii)
	defer func() {
		if e := o.Flush(); err == nil && e != nil {
			err = e
		}
		if err == nil && a.dump {
			err = i.Dump(a.stdout)
		}
	}()

	s := bufio.NewScanner(a.stdin)
	prompt := !a.ascii && isTerminal(a.stdin)
	for {
		st, err := step(i, o)
		if err != nil || st == vm.Halted {
			return err
		}
		if err = o.Flush(); err != nil {
			return err
		}
		v, err := a.readInput(s, prompt)
		if err != nil {
			return err
		}
		i.PushInput(v...)
	}
}
