// Package prompt reads field values from an interactive user.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when the input ends before an answer is given
var ErrNoInput = errors.New("no more input")

// Provider asks for one value at a time and reports rejected values
type Provider interface {
	Ask(label string) (string, error)
	Say(message string)
}

// Scanner is a Provider over a line-oriented reader, typically stdin
type Scanner struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewScanner creates a Provider that writes prompts to out and reads
// answers from in
func NewScanner(in io.Reader, out io.Writer) *Scanner {
	return &Scanner{in: bufio.NewScanner(in), out: out}
}

func (s *Scanner) Ask(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read %s: %w", label, err)
		}
		return "", fmt.Errorf("%s: %w", label, ErrNoInput)
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Scanner) Say(message string) {
	fmt.Fprintln(s.out, message)
}

// Confirm asks a yes/no question until it gets y, yes, n or no
func Confirm(p Provider, question string) (bool, error) {
	for {
		answer, err := p.Ask(question + " (y/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Say("Please answer y or n.")
	}
}

// Scripted is a Provider that replays fixed answers. Rejection messages are
// collected in Said.
type Scripted struct {
	Answers []string
	Said    []string
}

func (s *Scripted) Ask(label string) (string, error) {
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("%s: %w", label, ErrNoInput)
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return strings.TrimSpace(a), nil
}

func (s *Scripted) Say(message string) {
	s.Said = append(s.Said, message)
}
