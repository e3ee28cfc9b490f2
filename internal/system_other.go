// +build !aix,!darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd,!solaris

package internal

import "runtime"

// HostInfo returns a short human-readable description of the host OS, used
// in the REPL startup banner (cmd/dolittle). x/sys/unix's Uname has no
// analog outside the unix family, so non-unix platforms fall back to the
// runtime-reported GOOS/GOARCH pair.
func HostInfo() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
