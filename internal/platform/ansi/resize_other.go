//go:build !unix

package ansi

// watchResize is a no-op without SIGWINCH; Size reads the terminal each tick.
func (b *Backend) watchResize() {
	defer close(b.resized)
	<-b.stop
}
