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

// Package vm implements the Intcode virtual machine.
//
// An Intcode program is a flat sequence of signed integers. The VM decodes the
// cell at the program counter into an opcode and up to three parameters, each
// with its own addressing mode (position, immediate or relative), and executes
// it against a private, growable memory.
//
// Instances are cooperative: when a program reads input and the input queue is
// empty, Step and RunUntilSuspend return with the instance in the Suspended
// state and the read instruction not yet consumed. Feed it with PushInput and
// call RunUntilSuspend again to resume. This is how several instances are
// chained together on a single goroutine (see package amp).
//
// Memory reads beyond the end of the loaded program return 0, and writes grow
// the memory as needed. The MemLimit option restores the behavior of a fixed
// size memory where out of range accesses fail with ErrOutOfBounds.
//
// Step advances the PC past the instruction unless the instruction jumped,
// suspended or halted. A halted instance keeps its PC on the halt instruction.
package vm
