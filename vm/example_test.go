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

package vm_test

import (
	"fmt"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

// Shows how to run a program that reads input interactively.
func ExampleInstance_RunUntilSuspend() {
	// double every input value until a zero is read.
	prog, err := asm.Assemble("double", strings.NewReader(`
	loop:	in @x
		jf @x, end
		mul @x, 2, @x
		out @x
		jt 1, loop
	end:	halt
	x:	.dat 0`))
	if err != nil {
		panic(err)
	}
	i, err := vm.New(prog)
	if err != nil {
		panic(err)
	}
	for _, v := range []vm.Cell{21, -4, 0} {
		out, st, err := i.RunUntilSuspend()
		if err != nil {
			panic(err)
		}
		fmt.Println(out, st)
		i.PushInput(v)
	}
	out, st, err := i.RunUntilSuspend()
	fmt.Println(out, st, err)

	// Output:
	// [] suspended
	// [42] suspended
	// [-8] suspended
	// [] halted <nil>
}

func ExampleInstance_Run() {
	prog, err := vm.Parse(strings.NewReader("3,9,8,9,10,9,4,9,99,-1,8"))
	if err != nil {
		panic(err)
	}
	for _, v := range []vm.Cell{7, 8} {
		i, _ := vm.New(prog, vm.Input(v))
		out, err := i.Run()
		fmt.Println(v, out, err)
	}

	// Output:
	// 7 [0] <nil>
	// 8 [1] <nil>
}
