//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	cmd "github.com/fredli74/cmdparser"

	"github.com/fredli74/bufrw/pkg/bufrw"
	"github.com/fredli74/bufrw/pkg/core"
)

const DefaultServerPort = 7421

var (
	logLevel      int64 = int64(core.LogInfo)
	bufferSize    int64 = bufrw.DefaultBufferSize
	echoTimeout   int64 = 30
	servePort     int64 = DefaultServerPort
	serveMaxConn  int64 = 16
	selftestBytes int64 = 1024 * 1024
	chunkBits     int64 = 13
)

var Version = "(dev-build)"

func main() {
	defer func() {
		if rec := recover(); rec != nil {
			if core.LogEnabled(core.LogDebug) {
				debug.PrintStack()
			}
			fmt.Fprintf(os.Stderr, "bufrw-util: %v\n", rec)
			os.Exit(1)
		}
	}()
	cmd.Title = fmt.Sprintf("bufrw util %s", Version)
	cmd.ShowCurrentDefaults = true

	// Global options
	cmd.IntOption("loglevel", "", "<level>", "Set log level (0=errors, 1=warnings, 2=info, 3=debug, 4=trace)", &logLevel, cmd.Standard).OnChange(func() {
		core.LogLevel = int(logLevel)
	})
	cmd.IntOption("buffer", "", "<bytes>", "Buffer capacity of every wrapped file or connection", &bufferSize, cmd.Standard)

	cmd.Command("cat", "<file>", func() {
		if len(cmd.Args) < 3 {
			core.Abort("file required")
		}
		newCommandSet(int(bufferSize), os.Stdout).cat(cmd.Args[2])
	})

	cmd.Command("append", "<file> <text>", func() {
		if len(cmd.Args) < 4 {
			core.Abort("file and text required")
		}
		newCommandSet(int(bufferSize), os.Stdout).append(cmd.Args[2], cmd.Args[3])
	})

	cmd.Command("replace", "<file> <old> <new>", func() {
		if len(cmd.Args) < 5 {
			core.Abort("file, old and new text required")
		}
		newCommandSet(int(bufferSize), os.Stdout).replace(cmd.Args[2], cmd.Args[3], cmd.Args[4])
	})

	cmd.IntOption("bits", "chunks", "<bits>", "Average chunk size as a power of two", &chunkBits, cmd.Standard)
	cmd.Command("chunks", "<file>", func() {
		if len(cmd.Args) < 3 {
			core.Abort("file required")
		}
		newCommandSet(int(bufferSize), os.Stdout).chunks(cmd.Args[2], int(chunkBits))
	})

	cmd.IntOption("timeout", "echo", "<seconds>", "Connection timeout", &echoTimeout, cmd.Standard)
	cmd.Command("echo", "<host[:port]> <message> [<message>...]", func() {
		if len(cmd.Args) < 4 {
			core.Abort("host and at least one message required")
		}
		cs := newCommandSet(int(bufferSize), os.Stdout)
		cs.timeout = time.Duration(echoTimeout) * time.Second
		cs.echo(hostAddress(cmd.Args[2]), cmd.Args[3:])
	})

	cmd.IntOption("port", "serve", "<port>", "Listening port", &servePort, cmd.Standard)
	cmd.IntOption("max-conn", "serve", "<num>", "Maximum concurrent connections", &serveMaxConn, cmd.Standard)
	cmd.Command("serve", "", func() {
		core.ASSERT(servePort > 0 && servePort < 65536, "port out of range")
		cs := newCommandSet(int(bufferSize), os.Stdout)
		cs.maxConn = int(serveMaxConn)
		cs.listenAndServe(fmt.Sprintf(":%d", servePort))
	})

	cmd.IntOption("bytes", "selftest", "<bytes>", "Amount of data to push through the loopback", &selftestBytes, cmd.Hidden)
	cmd.Command("selftest", "", func() {
		newCommandSet(int(bufferSize), os.Stdout).selftest(int(selftestBytes))
	})

	err := cmd.Parse()
	core.AbortOn(err, "command parse failed: %v", err)
}
