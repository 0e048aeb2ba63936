package text

// Wrap breaks s into lines of at most maxLineLength characters.
//
// The text is scanned in windows of maxLineLength runes. Inside a window the
// line ends at the last space found at or before the window end, provided
// that space lies strictly after the window start; the space itself is
// dropped. Without such a space the window is cut at exactly maxLineLength
// characters, splitting the word. A trailing window shorter than
// maxLineLength is emitted unchanged.
//
// A space sitting exactly at the window start is never used as a break
// point, so it stays at the front of the next line.
//
// An empty string yields no lines. A maxLineLength below 1 returns a
// *WrapConfigError.
func Wrap(s string, maxLineLength int) ([]string, error) {
	if maxLineLength < 1 {
		return nil, &WrapConfigError{MaxLineLength: maxLineLength}
	}
	if s == "" {
		return nil, nil
	}

	runes := []rune(s)
	n := len(runes)
	var lines []string

	start := 0
	for start < n {
		end := start + maxLineLength
		if end >= n {
			lines = append(lines, string(runes[start:]))
			break
		}

		if sp := lastSpace(runes, start, end); sp > start {
			lines = append(lines, string(runes[start:sp]))
			start = sp + 1
			continue
		}

		lines = append(lines, string(runes[start:end]))
		start = end
	}

	return lines, nil
}

// lastSpace returns the index of the last ' ' in runes[from:to+1], or -1.
// The rune at index to is inspected too; it is always in range here since
// the caller only asks while to < len(runes).
func lastSpace(runes []rune, from, to int) int {
	for i := to; i >= from; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
