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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	a, b are source operands, c is a destination operand.
//
//	opcode	asm		args	description
//	------	---		----	-------------------------------------------------
//	1	add		a, b, c	c = a + b
//	2	mul		a, b, c	c = a * b
//	3	in, inp		c	read one input value into c
//	4	out		a	output a
//	5	jt, jnz		a, b	jump to b if a != 0
//	6	jf, jz		a, b	jump to b if a == 0
//	7	lt		a, b, c	c = 1 if a < b, 0 otherwise
//	8	eq		a, b, c	c = 1 if a == b, 0 otherwise
//	9	arb, rbo	a	add a to the relative base
//	99	halt, hlt		stop execution
//
// Operands:
//
//	42	immediate value (also 'c' for a character, or a label name)
//	@42	position: the value at address 42 (also @label)
//	rb+4	relative: the value at address relative base + 4 (rb-4, rb)
//
// Commas between operands are optional. Destination operands cannot be
// immediate values.
//
// Statements are separated by new lines or semicolons. Comments start with //
// and run until the end of the line, or are enclosed in /* and */.
//
// Labels are defined by appending a colon to an identifier:
//
//	loop:	add @x, 1, @x
//
// A label used as an immediate operand yields its address. With @, it yields
// the value stored at that address.
//
// Directives:
//
//	.dat v, ...	store the given values at the current address. Values
//			can be integers, characters, labels or double-quoted
//			strings (one cell per byte).
//	.org n		set the current address to n. Skipped cells are zero.
//
// Disassembly writes instructions in the same syntax, and cells that do not
// decode to a valid instruction as .dat directives.
package asm
