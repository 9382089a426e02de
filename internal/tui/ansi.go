package tui

// stripANSIEscapes removes CSI escape sequences. It is enough to tell
// whether a rendered markdown line is visually empty.
func stripANSIEscapes(s string) string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != 0x1b {
			out = append(out, b[i])
			continue
		}
		// CSI: ESC [ ... final byte in 0x40-0x7E.
		if i+1 < len(b) && b[i+1] == '[' {
			i += 2
			for i < len(b) {
				c := b[i]
				if c >= 0x40 && c <= 0x7E {
					break
				}
				i++
			}
		}
		// Other sequences: drop the ESC byte only.
	}
	return string(out)
}
