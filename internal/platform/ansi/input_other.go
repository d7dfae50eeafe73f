//go:build !unix

package ansi

import (
	"io"
	"os"
)

// inputInterruptible reports whether Close can wait for the reader to exit.
const inputInterruptible = false

// readStdin blocks on stdin. The reader goroutine cannot be interrupted
// here, so stop is only checked between reads.
func readStdin(f *os.File, buf []byte, stop <-chan struct{}) (int, error) {
	select {
	case <-stop:
		return -1, nil
	default:
	}
	n, err := f.Read(buf)
	if err == io.EOF {
		return -1, nil
	}
	return n, err
}
