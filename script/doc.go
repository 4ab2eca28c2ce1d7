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

// Package script runs Lua programs that act as the producer side of a
// mailbox. The Lua environment is the standard library plus the following
// globals:
//
//	read(addr, size)      returns size bytes from addr as a string
//	write(addr, data)     writes the string data to addr
//	read32(addr)          returns the little-endian word at addr
//	write32(addr, value)  writes value to addr as a little-endian word
//	log(tag, detail)      adds an entry to the central logger
//
// Failures in the mailbox are raised as Lua errors and so can be caught with
// pcall(). An uncaught error stops the script and is returned by Run().
//
// For example, to fill a buffer and check the first word:
//
//	write(0x80001000, string.rep("\0", 64))
//	write32(0x80001000, 0xcafe)
//	assert(read32(0x80001000) == 0xcafe)
package script
