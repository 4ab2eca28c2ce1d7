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

//go:build linux

package mailbox

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/jetsetilly/tsibridge/curated"
)

// Sentinal error patterns.
const (
	ErrAttach = "mailbox: cannot attach to %s: %v"
	ErrCreate = "mailbox: cannot create %s: %v"
	ErrRemove = "mailbox: cannot remove %s: %v"
)

// POSIX shared memory objects live in this directory on Linux. opening a
// file here is equivalent to shm_open()
const shmDir = "/dev/shm"

func shmPath(name string) string {
	return filepath.Join(shmDir, strings.TrimPrefix(name, "/"))
}

// Attach to an existing shared memory region by name. The region must
// already exist and be at least Size bytes. Attach() never creates a region.
func Attach(name string) (*Mailbox, error) {
	fd, err := unix.Open(shmPath(name), unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, curated.Errorf(ErrAttach, name, err)
	}
	return mapRegion(name, fd, ErrAttach)
}

// Create a new shared memory region by name. Fails if the region already
// exists. This is for the use of the producer, which owns the region.
func Create(name string) (*Mailbox, error) {
	fd, err := unix.Open(shmPath(name), unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, 0o600)
	if err != nil {
		return nil, curated.Errorf(ErrCreate, name, err)
	}

	// new regions are zero filled. all zeroes is a free lock and no command
	err = unix.Ftruncate(fd, int64(Size))
	if err != nil {
		unix.Close(fd)
		_ = unix.Unlink(shmPath(name))
		return nil, curated.Errorf(ErrCreate, name, err)
	}

	return mapRegion(name, fd, ErrCreate)
}

// Remove the named shared memory region. Processes that have the region
// mapped can continue to use it until they Detach().
func Remove(name string) error {
	err := unix.Unlink(shmPath(name))
	if err != nil {
		return curated.Errorf(ErrRemove, name, err)
	}
	return nil
}

// mapRegion maps the file descriptor and closes it. the mapping remains valid
// after the descriptor is closed.
func mapRegion(name string, fd int, pattern string) (*Mailbox, error) {
	defer unix.Close(fd)

	var st unix.Stat_t
	err := unix.Fstat(fd, &st)
	if err != nil {
		return nil, curated.Errorf(pattern, name, err)
	}
	if st.Size < int64(Size) {
		return nil, curated.Errorf(pattern, name, curated.Errorf(ErrRegionSize, st.Size, Size))
	}

	mem, err := unix.Mmap(fd, 0, Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, curated.Errorf(pattern, name, err)
	}

	mb, err := NewRegion(mem)
	if err != nil {
		_ = unix.Munmap(mem)
		return nil, curated.Errorf(pattern, name, err)
	}
	mb.unmap = func() error {
		return unix.Munmap(mem)
	}

	return mb, nil
}
