//go:build unix

package ansi

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// watchResize publishes the new size on every SIGWINCH until stop is closed.
func (b *Backend) watchResize() {
	defer close(b.resized)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	defer signal.Stop(sigCh)

	fd := int(b.out.Fd())
	for {
		select {
		case <-b.stop:
			return
		case <-sigCh:
			ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
			if err != nil {
				continue
			}
			b.inbox.Resize(int(ws.Col), int(ws.Row))
		}
	}
}
