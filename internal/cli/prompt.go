package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// answer is the result of an interactive confirmation.
type answer int

const (
	answerNo answer = iota
	answerYes
	answerAll  // yes to this and everything that follows
	answerQuit // stop processing entirely
)

// confirm asks a yes/no/all/quit question and reads one line from r.
// Unrecognized input repeats the question; EOF counts as quit.
func confirm(r *bufio.Reader, prompt string) answer {
	for {
		printInline("%s [y/n/a/q] ", prompt)
		line, err := r.ReadString('\n')
		if err == io.EOF && line == "" {
			printNewline()
			return answerQuit
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return answerYes
		case "n", "no":
			return answerNo
		case "a", "all":
			return answerAll
		case "q", "quit":
			return answerQuit
		}
		if err != nil {
			return answerQuit
		}
		fmt.Println()
	}
}
