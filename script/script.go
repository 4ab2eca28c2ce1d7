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

package script

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/jetsetilly/tsibridge/curated"
	"github.com/jetsetilly/tsibridge/logger"
	lua "github.com/yuin/gopher-lua"
)

// Sentinal error patterns.
const (
	ErrScript = "script: %s: %v"
)

// Driver is the producer side of a mailbox. It is satisfied by the
// mailbox.Driver type.
type Driver interface {
	Read(addr uint64, size int) ([]byte, error)
	Write(addr uint64, data []byte) error
}

// Run the Lua program read from source to completion. The name is used in
// error messages and log entries.
func Run(drv Driver, source io.Reader, name string) error {
	L := lua.NewState()
	defer L.Close()

	install(L, drv)

	fn, err := L.Load(source, name)
	if err != nil {
		return curated.Errorf(ErrScript, name, err)
	}

	L.Push(fn)
	err = L.PCall(0, lua.MultRet, nil)
	if err != nil {
		return curated.Errorf(ErrScript, name, err)
	}

	return nil
}

// RunFile is a convenience function that runs the Lua program in the named
// file.
func RunFile(drv Driver, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf(ErrScript, filename, err)
	}
	defer f.Close()
	return Run(drv, f, filename)
}

// install the mailbox functions as globals
func install(L *lua.LState, drv Driver) {
	L.SetGlobal("read", L.NewFunction(func(L *lua.LState) int {
		addr := checkAddress(L, 1)
		size := L.CheckInt(2)
		if size < 0 {
			L.ArgError(2, "negative size")
			return 0
		}
		data, err := drv.Read(addr, size)
		if err != nil {
			L.RaiseError("read: %v", err)
			return 0
		}
		L.Push(lua.LString(data))
		return 1
	}))

	L.SetGlobal("write", L.NewFunction(func(L *lua.LState) int {
		addr := checkAddress(L, 1)
		data := L.CheckString(2)
		err := drv.Write(addr, []byte(data))
		if err != nil {
			L.RaiseError("write: %v", err)
		}
		return 0
	}))

	L.SetGlobal("read32", L.NewFunction(func(L *lua.LState) int {
		addr := checkAddress(L, 1)
		data, err := drv.Read(addr, 4)
		if err != nil {
			L.RaiseError("read32: %v", err)
			return 0
		}
		L.Push(lua.LNumber(binary.LittleEndian.Uint32(data)))
		return 1
	}))

	L.SetGlobal("write32", L.NewFunction(func(L *lua.LState) int {
		addr := checkAddress(L, 1)
		v := uint32(int64(L.CheckNumber(2)))
		var data [4]byte
		binary.LittleEndian.PutUint32(data[:], v)
		err := drv.Write(addr, data[:])
		if err != nil {
			L.RaiseError("write32: %v", err)
		}
		return 0
	}))

	L.SetGlobal("log", L.NewFunction(func(L *lua.LState) int {
		tag := L.CheckString(1)
		detail := L.CheckString(2)
		logger.Log(logger.Allow, tag, detail)
		return 0
	}))
}

// addresses are lua numbers and so are exact up to 2^53
func checkAddress(L *lua.LState, n int) uint64 {
	v := L.CheckNumber(n)
	if v < 0 {
		L.ArgError(n, "negative address")
		return 0
	}
	return uint64(v)
}
