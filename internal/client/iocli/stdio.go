package iocli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio implements IO on the process's standard streams.
type Stdio struct {
	reader *bufio.Reader
}

// NewStdio creates a Stdio reading from os.Stdin.
func NewStdio() *Stdio {
	return &Stdio{reader: bufio.NewReader(os.Stdin)}
}

func (s *Stdio) Println(a ...any) {
	fmt.Println(a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}

// ReadInput prints the prompt and reads one line of input.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword prints the prompt and reads a line without echoing it.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
