//go:build !linux && !windows

package app

import (
	"os"
	"syscall"
)

var exitSig = []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
