package extract

import "regexp"

// ansiRegex matches two-byte ESC sequences (Fe) and CSI sequences.
var ansiRegex = regexp.MustCompile(`\x1b(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// StripANSI removes terminal escape sequences from a line, leaving visible
// characters (including box-drawing borders) intact.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
