package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// GetSimpleText prints a prompt to w and reads a single line from sc.
// Surrounding whitespace is trimmed. io.EOF is returned when input ends.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(sc *bufio.Scanner, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(sc.Text()), nil
}

// Confirm asks a yes/no question. Only "y" and "yes" count as yes.
func Confirm(sc *bufio.Scanner, prompt string, w io.Writer) (bool, error) {
	answer, err := GetSimpleText(sc, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
