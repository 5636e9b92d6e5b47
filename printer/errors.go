// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package printer

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every [MalformedError].
var ErrMalformed = errors.New("malformed IR")

// MalformedError is returned by [Print] when the document it was given
// cannot be printed, such as when its tags are unbalanced.
//
// This always indicates a bug in the formatting rule that built the
// document.
type MalformedError struct {
	// The number of elements consumed before the problem was found,
	// counting elements inside of interned sequences.
	Index int

	Reason string
}

// Error implements [error].
func (e *MalformedError) Error() string {
	return fmt.Sprintf("printer: %v at element %d: %s", ErrMalformed, e.Index, e.Reason)
}

// Unwrap returns [ErrMalformed].
func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}
