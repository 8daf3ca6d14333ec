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

// The intcode command line tool runs Intcode programs, either as a single
// interactive machine or as an amplifier network.
//
// Usage:
//
//	intcode [flags] [program]
//
//	-ascii
//		  ASCII input and output
//	-asm
//		  program file is assembly source
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  disassemble program and exit
//	-dump
//		  dump memory image upon exit
//	-image filename
//		  Load program from file filename (or first argument)
//	-input values
//		  comma separated values to queue as input (can be specified multiple times)
//	-phases settings
//		  run an amplifier network with the given comma separated phase settings
//	-search settings
//		  find the permutation of phase settings that yields the highest signal
//	-serial
//		  run amplifiers in series instead of a feedback loop
//	-set addr=value[,value...]
//		  patch memory at addr=value[,value...] before running (can be specified multiple times)
//	-size int
//		  memory size limit in cells (0 = unlimited)
//	-steps int
//		  max number of instructions per machine (0 = unlimited)
//	-trace
//		  trace execution to stderr
//	-workers int
//		  max number of concurrent networks for -search (0 = no limit)
//
// Programs are files of comma separated integers. With -asm, the file is
// assembled first (see package github.com/db47h/intcode/asm for the syntax).
//
// When the program needs input and the values given with -input have all been
// consumed, a line is read from stdin. The line is parsed as a list of
// integers separated by commas or spaces. If stdin is a terminal, a "? "
// prompt is printed. Output values are printed one per line. The program
// exits silently when stdin is exhausted.
//
// -ascii: input lines are fed to the program one character per value,
// including the terminating newline. Output values in the ASCII range are
// printed as characters, other values as decimal numbers on their own line.
//
// -set: patches memory before running. For example, -set 1=12,2 stores 12 at
// address 1 and 2 at address 2.
//
// -dump: once the program halts, its memory is written to stdout in program
// file format. Combined with -set, this can be used to read results left in
// memory.
//
// -phases: runs a copy of the program for each phase setting. Each amplifier
// receives its phase setting, then the output of the previous amplifier. In
// feedback mode (the default), the output of the last amplifier is fed back to
// the first one until the amplifiers halt. The final signal is printed.
//
// -search: tries every permutation of the given phase settings and prints the
// highest signal followed by the phase settings that produced it.
//
// -debug: will print a full stacktrace and the machine state should the
// program fault.
package main
