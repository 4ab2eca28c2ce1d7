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

// Package logger is the central log for tsibridge. Log entries are tagged
// with the name of the part of the system that generated them, for example
// "mailbox" or "target". Repeated entries are collapsed into a single entry
// with a repeat count.
//
// The log is bounded and is not printed by default. SetEcho() can be used to
// echo new entries to an io.Writer as they arrive. This is important for the
// mailbox package, which logs attachment failures: a missing producer is a
// supported mode of operation and should not be visible unless asked for.
//
// The Permission argument to Log() and Logf() allows callers to gate logging
// on some condition without wrapping every call in an if statement. The
// logger.Allow value should be used when logging is unconditional.
package logger
