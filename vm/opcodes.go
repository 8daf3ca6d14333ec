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

import "strconv"

// Opcode identifies an Intcode operation. It is the value of the two least
// significant decimal digits of an instruction word.
type Opcode Cell

// Intcode Virtual Machine Opcodes.
const (
	OpAdd           Opcode = 1
	OpMul           Opcode = 2
	OpIn            Opcode = 3
	OpOut           Opcode = 4
	OpJumpIfTrue    Opcode = 5
	OpJumpIfFalse   Opcode = 6
	OpLessThan      Opcode = 7
	OpEquals        Opcode = 8
	OpAdjustRelBase Opcode = 9
	OpHalt          Opcode = 99
)

// MaxParams is the maximum number of parameters of any instruction.
const MaxParams = 3

type opInfo struct {
	name  string
	arity int
}

var opcodes = [...]opInfo{
	OpAdd:           {"add", 3},
	OpMul:           {"mul", 3},
	OpIn:            {"in", 1},
	OpOut:           {"out", 1},
	OpJumpIfTrue:    {"jt", 2},
	OpJumpIfFalse:   {"jf", 2},
	OpLessThan:      {"lt", 3},
	OpEquals:        {"eq", 3},
	OpAdjustRelBase: {"arb", 1},
	OpHalt:          {"halt", 0},
}

// Valid returns true if op is a defined opcode.
func (op Opcode) Valid() bool {
	return op >= 0 && int(op) < len(opcodes) && opcodes[op].name != ""
}

// Arity returns the number of parameters of op, or -1 if op is not a valid
// opcode.
func (op Opcode) Arity() int {
	if !op.Valid() {
		return -1
	}
	return opcodes[op].arity
}

// String returns the assembler mnemonic for op.
func (op Opcode) String() string {
	if !op.Valid() {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return opcodes[op].name
}

// Mode is a parameter addressing mode.
type Mode int

// Addressing modes.
const (
	Position  Mode = iota // value is an address
	Immediate             // value is used literally
	Relative              // value is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Encode returns the instruction word for op with the given parameter modes.
// Missing modes default to Position.
func Encode(op Opcode, modes ...Mode) Cell {
	w := Cell(op)
	f := Cell(100)
	for _, m := range modes {
		w += Cell(m) * f
		f *= 10
	}
	return w
}
