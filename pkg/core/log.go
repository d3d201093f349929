//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package core

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const LOGTIMEFORMAT string = "20060102 15:04:05"

const (
	LogError = iota
	LogWarning
	LogInfo
	LogDebug
	LogTrace
)

// LogLevel is the most verbose level printed.
var LogLevel int = LogInfo

// LogOutput receives all log lines, tests swap it for a buffer.
var LogOutput io.Writer = os.Stdout

var logMarks = [...]string{LogError: "!", LogWarning: "*", LogInfo: ".", LogDebug: "(", LogTrace: "?"}
var logMutex sync.Mutex

// LogEnabled reports if a message at level would be printed. Callers building
// expensive arguments check it first.
func LogEnabled(level int) bool {
	return level <= LogLevel
}

// Log prints one timestamped line marked with the level. String arguments
// are escaped so a line never spans more than one row.
func Log(level int, format string, a ...interface{}) {
	if !LogEnabled(level) {
		return
	}
	args := make([]interface{}, len(a))
	for i, v := range a {
		if s, ok := v.(string); ok {
			v = Escape(s)
		}
		args[i] = v
	}
	line := fmt.Sprintf("%s %s %s\n", time.Now().UTC().Format(LOGTIMEFORMAT), logMarks[level], fmt.Sprintf(format, args...))

	logMutex.Lock()
	defer logMutex.Unlock()
	io.WriteString(LogOutput, line)
}

// Escape replaces control characters with \xNN.
func Escape(s string) string {
	if strings.IndexFunc(s, isControl) < 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if isControl(r) {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}
