package tui

import "strings"

// stripANSIEscapes removes ANSI CSI escape sequences from a string.
// It is intentionally minimal: good enough for detecting "visually empty"
// lines produced by the markdown renderer in the legal preview pane.
func stripANSIEscapes(s string) string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != 0x1b { // ESC
			out = append(out, b[i])
			continue
		}
		// CSI: ESC [
		if i+1 < len(b) && b[i+1] == '[' {
			i += 2
			// Consume until final byte (0x40-0x7E).
			for i < len(b) {
				c := b[i]
				if c >= 0x40 && c <= 0x7E {
					break
				}
				i++
			}
			continue
		}
		// Unknown ESC sequence: drop just the ESC byte.
	}
	return string(out)
}

// trimVisuallyEmptyTail drops trailing lines that are blank once ANSI styling
// is stripped. Markdown renderers emit styled spacer lines that would
// otherwise eat vertical space under the legal preview.
func trimVisuallyEmptyTail(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 {
		last := strings.TrimSpace(stripANSIEscapes(lines[len(lines)-1]))
		if last != "" {
			break
		}
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
