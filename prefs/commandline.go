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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// CommandLine is a set of key/value pairs parsed from a prefs string given on
// the command line.
type CommandLine map[string]string

// ParseCommandLine parses a prefs string. Entries are separated by a
// semi-colon and keys are separated from values by a double colon:
//
//	"chunkmax::64; loadmem::true"
//
// Entries that don't have exactly one double colon are ignored. White space
// around keys and values is removed.
func ParseCommandLine(prefs string) CommandLine {
	cl := make(CommandLine)
	for _, p := range strings.Split(prefs, ";") {
		kv := strings.Split(p, "::")
		if len(kv) == 2 {
			cl[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
	return cl
}

// Apply the value for key to the preference. The entry is removed from the
// CommandLine once it has been applied. Returns false if there is no entry for
// the key.
func (cl CommandLine) Apply(key string, p interface{ Set(Value) error }) (bool, error) {
	v, ok := cl[key]
	if !ok {
		return false, nil
	}
	delete(cl, key)
	return true, p.Set(v)
}

// Unused returns the entries that have not been applied, in the same format
// as the prefs string accepted by ParseCommandLine(). Entries are sorted by
// key.
func (cl CommandLine) Unused() string {
	keys := make([]string, 0, len(cl))
	for key := range cl {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s::%s; ", key, cl[key]))
	}

	return strings.TrimSuffix(s.String(), "; ")
}
