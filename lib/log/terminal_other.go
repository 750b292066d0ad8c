//go:build !linux

package log

import "io"

func isTerminal(w io.Writer) bool {
	return false
}
