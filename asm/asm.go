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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// opcodes lists mnemonics for each opcode. The first one is the canonical name,
// the one returned by vm.Opcode.String and used by the disassembler.
var opcodes = [...]struct {
	op    vm.Opcode
	names []string
}{
	{vm.OpAdd, []string{"add"}},
	{vm.OpMul, []string{"mul"}},
	{vm.OpIn, []string{"in", "inp"}},
	{vm.OpOut, []string{"out"}},
	{vm.OpJumpIfTrue, []string{"jt", "jnz"}},
	{vm.OpJumpIfFalse, []string{"jf", "jz"}},
	{vm.OpLessThan, []string{"lt"}},
	{vm.OpEquals, []string{"eq"}},
	{vm.OpAdjustRelBase, []string{"arb", "rbo"}},
	{vm.OpHalt, []string{"halt", "hlt"}},
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for _, o := range opcodes {
		for _, n := range o.names {
			opcodeIndex[n] = o.op
		}
	}
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
func Assemble(name string, r io.Reader) ([]vm.Cell, error) {
	return newParser().Parse(name, r)
}

// FormatParam returns the assembly representation of an instruction
// parameter.
func FormatParam(p vm.Param) string {
	v := strconv.FormatInt(int64(p.Value), 10)
	switch p.Mode {
	case vm.Position:
		return "@" + v
	case vm.Relative:
		if p.Value < 0 {
			return "rb" + v
		}
		return "rb+" + v
	}
	return v
}

// Format returns the assembly representation of a decoded instruction.
func Format(in *vm.Instruction) string {
	s := in.Op.String()
	for k, p := range in.Args() {
		if k == 0 {
			s += " "
		} else {
			s += ", "
		}
		s += FormatParam(p)
	}
	return s
}

// Disassemble writes a disassembly of the instruction at position pc in the
// given slice to the specified io.Writer and returns the position of the next
// instruction and any write error. Cells that do not decode to a valid
// instruction are written as a .dat directive.
func Disassemble(cells []vm.Cell, pc int, w io.Writer) (next int, err error) {
	if pc < 0 || pc >= len(cells) {
		return pc, errors.Errorf("disassemble: pc %d out of range", pc)
	}
	ew := ici.NewErrWriter(w)
	op, modes, err := vm.DecodeOp(cells[pc])
	n := op.Arity()
	if err != nil || pc+n >= len(cells) {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(cells[pc]), 10))
		return pc + 1, ew.Err
	}
	in := vm.Instruction{Op: op}
	for k := 0; k < n; k++ {
		in.Params[k] = vm.Param{Mode: modes[k], Value: cells[pc+1+k]}
	}
	io.WriteString(ew, Format(&in))
	return pc + 1 + n, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (cells[0]). It will return any write error.
func DisassembleAll(cells []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(cells); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(cells, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
