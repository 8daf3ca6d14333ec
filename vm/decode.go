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

import "github.com/pkg/errors"

// Param is an instruction parameter: a raw value and its addressing mode.
type Param struct {
	Mode  Mode
	Value Cell
}

// Modes holds the addressing modes of an instruction's parameters.
type Modes [MaxParams]Mode

// Instruction is a decoded instruction.
type Instruction struct {
	Op     Opcode
	Params [MaxParams]Param
}

// Args returns the instruction parameters. Its length is the arity of the
// opcode.
func (in *Instruction) Args() []Param {
	return in.Params[:in.Op.Arity()]
}

// Len returns the number of cells used by the instruction.
func (in *Instruction) Len() int {
	return 1 + in.Op.Arity()
}

// DecodeOp splits an instruction word into its opcode and parameter modes.
// Mode digits beyond the opcode's arity are ignored.
func DecodeOp(w Cell) (op Opcode, modes Modes, err error) {
	if w < 0 {
		return 0, modes, errors.Wrapf(ErrInvalidOpcode, "negative instruction word %d", w)
	}
	op = Opcode(w % 100)
	if !op.Valid() {
		return op, modes, errors.Wrapf(ErrInvalidOpcode, "opcode %d", op)
	}
	w /= 100
	for k, n := 0, op.Arity(); k < n; k++ {
		d := Mode(w % 10)
		if d > Relative {
			return op, modes, errors.Wrapf(ErrInvalidOpcode, "mode %d for parameter %d of %s", d, k+1, op)
		}
		modes[k] = d
		w /= 10
	}
	return op, modes, nil
}

// Decode decodes the instruction at address pc.
func Decode(m *Memory, pc int) (in Instruction, err error) {
	w, err := m.Load(Cell(pc))
	if err != nil {
		return in, err
	}
	op, modes, err := DecodeOp(w)
	if err != nil {
		return in, err
	}
	in.Op = op
	for k, n := 0, op.Arity(); k < n; k++ {
		v, err := m.Load(Cell(pc + 1 + k))
		if err != nil {
			return in, err
		}
		in.Params[k] = Param{modes[k], v}
	}
	return in, nil
}
