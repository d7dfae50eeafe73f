package ansi

// Control bytes recognized on stdin.
const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// isExitInput reports whether a chunk read from stdin asks to quit.
// A lone escape byte is the Esc key; escape followed by more bytes is a
// sequence such as an arrow key and is ignored.
func isExitInput(p []byte) bool {
	if len(p) == 1 && p[0] == keyEscape {
		return true
	}
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case keyCtrlC, 'q', 'Q':
			return true
		case keyEscape:
			// Skip the rest of a CSI or SS3 sequence
			if i+1 < len(p) && (p[i+1] == '[' || p[i+1] == 'O') {
				i += 2
				for i < len(p) && (p[i] < 0x40 || p[i] > 0x7e) {
					i++
				}
			}
		}
	}
	return false
}
