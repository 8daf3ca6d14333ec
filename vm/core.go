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
	"io"

	"github.com/pkg/errors"
)

// StepResult is the outcome of a single Step.
type StepResult struct {
	Output    Cell  // output value, valid only if HasOutput is true
	HasOutput bool  // the instruction produced an output value
	State     State // state of the instance after the step
}

// effect is what executing one instruction asks of the instance.
type effect struct {
	jump    bool
	next    int
	out     Cell
	hasOut  bool
	suspend bool
	halt    bool
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

func (i *Instance) exec(in *Instruction) (e effect, err error) {
	m, base, p := &i.Mem, i.RelBase, in.Args()
	switch in.Op {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		var lhs, rhs, v Cell
		if lhs, err = m.Read(p[0], base); err != nil {
			return e, err
		}
		if rhs, err = m.Read(p[1], base); err != nil {
			return e, err
		}
		switch in.Op {
		case OpAdd:
			v = lhs + rhs
		case OpMul:
			v = lhs * rhs
		case OpLessThan:
			v = b2c(lhs < rhs)
		case OpEquals:
			v = b2c(lhs == rhs)
		}
		err = m.Write(p[2], base, v)
	case OpIn:
		if len(i.input) == 0 {
			e.suspend = true
			return e, nil
		}
		if err = m.Write(p[0], base, i.input[0]); err != nil {
			return e, err
		}
		if i.input = i.input[1:]; len(i.input) == 0 {
			i.input = nil
		}
	case OpOut:
		e.out, err = m.Read(p[0], base)
		e.hasOut = err == nil
	case OpJumpIfTrue, OpJumpIfFalse:
		var cond, target Cell
		if cond, err = m.Read(p[0], base); err != nil {
			return e, err
		}
		if (cond != 0) == (in.Op == OpJumpIfTrue) {
			if target, err = m.Read(p[1], base); err != nil {
				return e, err
			}
			if target < 0 || target >= MaxCells {
				return e, errors.Wrapf(ErrOutOfBounds, "jump target %d", target)
			}
			e.jump, e.next = true, int(target)
		}
	case OpAdjustRelBase:
		var v Cell
		if v, err = m.Read(p[0], base); err != nil {
			return e, err
		}
		i.RelBase += v
	case OpHalt:
		e.halt = true
	default:
		err = errors.Wrapf(ErrInvalidOpcode, "opcode %d", in.Op)
	}
	return e, err
}

func (i *Instance) fault(err error) (StepResult, error) {
	i.state = Faulted
	i.err = &Fault{PC: i.PC, Err: err}
	return StepResult{State: Faulted}, i.err
}

// Step decodes and executes a single instruction.
//
// If the instruction reads input and the input queue is empty, the instruction
// is not executed and the instance enters the Suspended state; PC, memory and
// the relative base are left untouched.
//
// If an error occurs, the instance enters the Faulted state and the PC will
// point to the instruction that triggered the error. The error is a *Fault and
// any subsequent call to Step returns the same error. Calling Step on a halted
// instance returns ErrHalted.
func (i *Instance) Step() (r StepResult, err error) {
	switch i.state {
	case Halted:
		return StepResult{State: Halted}, ErrHalted
	case Faulted:
		return StepResult{State: Faulted}, i.err
	}
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				r, err = i.fault(errors.Wrap(e, "recovered error"))
			default:
				panic(e)
			}
		}
	}()
	if i.maxSteps > 0 && i.insCount >= i.maxSteps {
		return i.fault(errors.Wrapf(ErrStepLimit, "%d instructions", i.insCount))
	}
	if i.ctx != nil && i.insCount%PollInterval == 0 {
		if err := i.ctx.Err(); err != nil {
			return i.fault(err)
		}
	}
	in, err := Decode(&i.Mem, i.PC)
	if err != nil {
		return i.fault(err)
	}
	// input starved reads are not traced
	if i.trace != nil && (in.Op != OpIn || len(i.input) > 0) {
		i.trace(i, &in)
	}
	e, err := i.exec(&in)
	switch {
	case err != nil:
		return i.fault(err)
	case e.suspend:
		i.state = Suspended
		return StepResult{State: Suspended}, nil
	case e.halt:
		i.state = Halted
	case e.jump:
		i.PC = e.next
	default:
		i.PC += in.Len()
	}
	if i.state == Suspended {
		i.state = Runnable
	}
	i.insCount++
	return StepResult{Output: e.out, HasOutput: e.hasOut, State: i.state}, nil
}

// RunUntilSuspend steps the instance until it suspends on input or halts and
// returns the values output in the meantime along with the final state.
//
// On a halted instance, it returns immediately with no output and a nil
// error. If an error occurs, it is returned together with the outputs produced
// before the fault.
func (i *Instance) RunUntilSuspend() (out []Cell, st State, err error) {
	for {
		if i.state == Halted {
			return out, Halted, nil
		}
		r, err := i.Step()
		if err != nil {
			return out, r.State, err
		}
		if r.HasOutput {
			out = append(out, r.Output)
		}
		if r.State != Runnable {
			return out, r.State, nil
		}
	}
}

// Run runs the program until it halts and returns all output values.
//
// If the program requests input when the input queue is empty, Run returns the
// outputs produced so far and io.EOF. The instance is then Suspended and can
// be resumed after pushing more input.
func (i *Instance) Run() ([]Cell, error) {
	out, st, err := i.RunUntilSuspend()
	if err == nil && st == Suspended {
		err = io.EOF
	}
	return out, err
}
