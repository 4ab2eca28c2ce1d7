// This file is part of tsibridge.
//
// tsibridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tsibridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tsibridge.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. Patterns intended to be checked by callers should be
// exported as string constants from the package that creates the error. For
// example, the plusargs package exports:
//
//	const ErrInitWriteFormat = "plusargs: improperly formatted +init_write argument (%s)"
//
// and a caller can check for it with:
//
//	if curated.Is(err, plusargs.ErrInitWriteFormat) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. The chain is the list of curated errors passed as values
// to Errorf().
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For example, if a bridge error is wrapped in a
// bridge error:
//
//	e := curated.Errorf("bridge: %v", curated.Errorf("bridge: reset failed"))
//
// the message will be "bridge: reset failed" and not "bridge: bridge: reset
// failed".
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
package curated
