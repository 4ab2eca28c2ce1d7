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

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/tsibridge/bridge"
	"github.com/jetsetilly/tsibridge/curated"
	"github.com/jetsetilly/tsibridge/easyterm"
	"github.com/jetsetilly/tsibridge/logger"
	"github.com/jetsetilly/tsibridge/mailbox"
	"github.com/jetsetilly/tsibridge/modalflag"
	"github.com/jetsetilly/tsibridge/plusargs"
	"github.com/jetsetilly/tsibridge/script"
	"github.com/jetsetilly/tsibridge/statsview"
	"github.com/jetsetilly/tsibridge/target"
	"github.com/jetsetilly/tsibridge/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used by modes that need to clean up
	// before quitting, for example to restore the terminal.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// communication between the main() function and the launch() function
type mainSync struct {
	state chan stateRequest
}

// exit values
const (
	exitHelp  = 0
	exitParse = 10
	exitMode  = 20
)

func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	exitVal := 0

	// default interrupt handler. can be turned off with reqNoIntSig
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:], os.Stdout)

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine
func launch(sync *mainSync, args []string, output io.Writer) {
	sync.state <- stateRequest{req: reqQuit, args: dispatch(sync, args, output)}
}

// dispatch parses the mode from the arguments and runs it. returns the
// program exit value
func dispatch(sync *mainSync, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RUN", "DRIVE", "DUMP", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitHelp

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync, output)

	case "DRIVE":
		err = drive(md, output)

	case "DUMP":
		err = dump(md, output)

	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitMode
	}

	return 0
}

// the argument vector given to the bridge is in the form of a simulator's
// argv. the first entry is the program name
func simArgs(md *modalflag.Modes) []string {
	return append([]string{version.ApplicationName}, md.RemainingArgs()...)
}

func run(md *modalflag.Modes, sync *mainSync, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("plusargs follow the flags: +loadmem=<file> +init_write=0x<addr>:0x<value> +no_hart0_msip\n" +
		"press q to quit and s for statistics when stdin is a terminal")

	shm := md.AddString("shm", mailbox.DefaultName, "name of shared memory segment")
	mem := md.AddInt("mem", 16, "size of target RAM in MiB")
	prefsStr := md.AddString("prefs", "", "target preferences (eg. \"chunkmax::64; loadmem::false\")")
	cycles := md.AddInt("cycles", 0, "number of idle cycles to run for. zero runs until quit")
	echo := md.AddBool("log", false, "echo log to stderr")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	p, err := md.Parse()
	if err != nil || p == modalflag.ParseHelp {
		return err
	}

	if *echo {
		logger.SetEcho(os.Stderr)
		defer logger.SetEcho(nil)
	}

	if stats != nil && *stats {
		statsview.Launch(output)
	}

	tgt, err := target.NewTarget(*mem * 1024 * 1024)
	if err != nil {
		return err
	}

	err = tgt.ApplyPrefs(*prefsStr)
	if err != nil {
		return err
	}

	b, err := bridge.New(simArgs(md), tgt, bridge.Options{
		CanHaveLoadmem: true,
		ShmName:        *shm,
	})
	if err != nil {
		return err
	}
	defer b.Close()

	cfg := b.Config()
	if cfg.LoadmemEnabled {
		err = loadmem(tgt, b, cfg.LoadmemFile)
		if err != nil {
			return err
		}
	}

	err = b.Reset()
	if err != nil {
		return err
	}

	// this mode handles interrupts itself so that the terminal can be
	// restored before quitting
	sync.state <- stateRequest{req: reqNoIntSig}
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	var pt *easyterm.Terminal
	var keys <-chan byte
	if easyterm.IsTerminal(os.Stdin) {
		pt, err = easyterm.NewTerminal(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		err = pt.CBreakMode()
		if err != nil {
			return err
		}
		defer pt.CanonicalMode()

		// discard anything typed before the simulation started
		err = pt.Flush()
		if err != nil {
			return err
		}
		keys = pt.Keys()
	}

	if b.UsingIPCDriver() {
		fmt.Fprintf(output, "running (mailbox attached)\n")
	} else {
		fmt.Fprintf(output, "running (mailbox unavailable)\n")
	}

	var serviced int
	for n := 0; *cycles == 0 || n < *cycles; n++ {
		select {
		case <-intChan:
			fmt.Fprintln(output, "\r")
			return summary(output, tgt, serviced)

		case k, ok := <-keys:
			if !ok {
				keys = nil
				break // select
			}
			switch k {
			case 'q', 'Q':
				return summary(output, tgt, serviced)
			case 's', 'S':
				pt.Print("%s serviced=%d\n", tgt.Stats(), serviced)
			}

		default:
		}

		if b.Idle() != mailbox.None {
			serviced++
		}
	}

	return summary(output, tgt, serviced)
}

// loadmem writes the program file to the target through the backdoor. the
// loadmem mode flag is restored afterwards
func loadmem(tgt *target.Target, b *bridge.Bridge, filename string) (rerr error) {
	prev := tgt.IsLoadmem()
	err := tgt.Prefs.Loadmem.Set(true)
	if err != nil {
		return err
	}
	defer func() {
		err := tgt.Prefs.Loadmem.Set(prev)
		if err != nil && rerr == nil {
			rerr = err
		}
	}()

	entry, err := target.LoadProgram(filename, b.Memory())
	if err != nil {
		return err
	}
	logger.Logf(logger.Allow, "tsibridge", "program entry: %#x", entry)

	return nil
}

func summary(output io.Writer, tgt *target.Target, serviced int) error {
	fmt.Fprintf(output, "%s serviced=%d\n", tgt.Stats(), serviced)
	return nil
}

func drive(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AddSubModes("READ", "WRITE", "SCRIPT")
	md.AdditionalHelp("READ <addr> <size>\nWRITE <addr> <hex bytes>\nSCRIPT <file.lua>")

	shm := md.AddString("shm", mailbox.DefaultName, "name of shared memory segment")
	timeout := md.AddDuration("timeout", mailbox.DefaultTimeout, "how long to wait for the simulation")
	remove := md.AddBool("remove", false, "remove the shared memory segment when finished")

	p, err := md.Parse()
	if err != nil || p == modalflag.ParseHelp {
		return err
	}

	args := md.RemainingArgs()
	want := map[string]int{"READ": 2, "WRITE": 2, "SCRIPT": 1}[md.Mode()]
	if len(args) != want {
		return curated.Errorf("%s requires %d arguments", md.Mode(), want)
	}

	// the producer owns the segment and so creates it if it doesn't exist
	mb, err := mailbox.Attach(*shm)
	if err != nil {
		mb, err = mailbox.Create(*shm)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "created shared memory segment %s\n", *shm)
	}

	drv := mailbox.NewDriver(mb)
	drv.Timeout = *timeout
	defer func() {
		_ = drv.Close()
		if *remove {
			_ = mailbox.Remove(*shm)
		}
	}()

	err = drv.WaitForConsumer(*timeout)
	if err != nil {
		return err
	}

	switch md.Mode() {
	case "READ":
		addr, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil {
			return err
		}
		size, err := strconv.ParseUint(args[1], 0, 32)
		if err != nil {
			return err
		}
		data, err := drv.Read(addr, int(size))
		if err != nil {
			return err
		}
		fmt.Fprint(output, hex.Dump(data))

	case "WRITE":
		addr, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil {
			return err
		}
		data, err := hex.DecodeString(strings.TrimPrefix(args[1], "0x"))
		if err != nil {
			return err
		}
		err = drv.Write(addr, data)
		if err != nil {
			return err
		}

	case "SCRIPT":
		err = script.RunFile(drv, args[0])
		if err != nil {
			return err
		}
	}

	return nil
}

// snapshot of a mailbox for the DUMP mode
type snapshot struct {
	Name    string
	Command string
	Status  string
	Address uint64
	Size    uint32
}

func dump(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	shm := md.AddString("shm", mailbox.DefaultName, "name of shared memory segment")

	p, err := md.Parse()
	if err != nil || p == modalflag.ParseHelp {
		return err
	}

	cfg, err := plusargs.Parse(simArgs(md), true)
	if err != nil {
		return err
	}

	dumps := []interface{}{&cfg}

	mb, err := mailbox.Attach(*shm)
	if err != nil {
		logger.Logf(logger.Allow, "tsibridge", "dump: %v", err)
	} else {
		snap := snapshot{
			Name:    *shm,
			Command: mb.Command().String(),
			Status:  "ok",
			Address: mb.Address(),
			Size:    mb.Size(),
		}
		if mb.Status() != mailbox.StatusOK {
			snap.Status = "failed"
		}
		dumps = append(dumps, &snap)
		if err := mb.Detach(); err != nil {
			return curated.Errorf("dump: %v", err)
		}
	}

	memviz.Map(output, dumps...)

	return nil
}
