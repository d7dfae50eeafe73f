//go:build unix

package ansi

import (
	"os"

	"golang.org/x/sys/unix"
)

// pollTimeoutMs bounds how long a read waits before checking stop.
const pollTimeoutMs = 100

// inputInterruptible reports whether Close can wait for the reader to exit.
const inputInterruptible = true

// readStdin waits for input with a timeout so the reader can observe stop.
// It returns -1 once stop is closed or stdin reaches EOF.
func readStdin(f *os.File, buf []byte, stop <-chan struct{}) (int, error) {
	fd := int(f.Fd())
	for {
		select {
		case <-stop:
			return -1, nil
		default:
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, pollTimeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, err
		}
		if n == 0 {
			continue
		}

		rn, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, err
		}
		if rn == 0 {
			return -1, nil
		}
		return rn, nil
	}
}
