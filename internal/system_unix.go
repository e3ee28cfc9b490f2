// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package internal

import (
	"bytes"
	"fmt"

	"golang.org/x/sys/unix"
)

// HostInfo returns a short human-readable description of the host OS,
// used in the REPL startup banner (cmd/dolittle).
func HostInfo() string {
	var uname unix.Utsname
	if unix.Uname(&uname) != nil {
		return "unknown host"
	}
	sys := bytes.Trim(uname.Sysname[:], "\x00")
	rel := bytes.Trim(uname.Release[:], "\x00")
	return fmt.Sprintf("%s %s", sys, rel)
}
