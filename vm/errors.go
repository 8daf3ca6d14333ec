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
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by the VM. Use errors.Cause or errors.Is to test for them:
// they are usually wrapped with more context, and always within a *Fault when
// returned from Step.
var (
	ErrInvalidOpcode      = errors.New("invalid opcode")
	ErrInvalidWriteTarget = errors.New("write through immediate parameter")
	ErrOutOfBounds        = errors.New("address out of bounds")
	ErrHalted             = errors.New("machine halted")
	ErrStepLimit          = errors.New("step limit reached")
)

// Fault is the error returned by an Instance that stopped abnormally. PC is the
// address of the faulting instruction.
type Fault struct {
	PC  int
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault @pc=%d: %v", f.PC, f.Err)
}

// Cause implements the causer interface from github.com/pkg/errors.
func (f *Fault) Cause() error { return f.Err }

// Unwrap returns the underlying error.
func (f *Fault) Unwrap() error { return f.Err }

// Format supports the %+v verb by printing the stack trace of the wrapped
// error, if any.
func (f *Fault) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "fault @pc=%d: %+v", f.PC, f.Err)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, f.Error())
	case 'q':
		fmt.Fprintf(s, "%q", f.Error())
	}
}
