package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads validated values one line at a time. Invalid input is
// reported on Out and the prompt is repeated until a valid line arrives or
// the input ends, in which case io.EOF is returned.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Out returns the writer prompts are printed to.
func (p *Prompter) Out() io.Writer { return p.out }

// Line prints prompt and returns the next line with its trailing CR removed.
// Empty lines are returned as is.
func (p *Prompter) Line(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(p.in.Text(), "\r"), nil
}

// Ask repeats prompt until validate accepts the trimmed line.
func (p *Prompter) Ask(prompt string, validate func(string) error) (string, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if err := validate(line); err != nil {
			fmt.Fprintf(p.out, "Error: %v. Please try again.\n", err)
			continue
		}
		return line, nil
	}
}

// String returns a non-empty, trimmed line.
func (p *Prompter) String(prompt string) (string, error) {
	return p.Ask(prompt, ValidateNonEmpty)
}

// Optional returns a trimmed line that may be empty.
func (p *Prompter) Optional(prompt string) (string, error) {
	return p.Ask(prompt, func(string) error { return nil })
}

func (p *Prompter) Int(prompt string) (int, error) {
	for {
		line, err := p.Ask(prompt, ValidateInt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(p.out, "Error: number %q is out of range. Please try again.\n", line)
			continue
		}
		return n, nil
	}
}

func (p *Prompter) Float(prompt string) (float64, error) {
	line, err := p.Ask(prompt, ValidateFloat)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(line, 64)
}

// Confirm accepts y, yes, n or no in any case.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	line, err := p.Ask(prompt+" [y/n]: ", func(s string) error {
		switch strings.ToLower(s) {
		case "y", "yes", "n", "no":
			return nil
		}
		return fmt.Errorf("answer %q is not y or n", s)
	})
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(line), "y"), nil
}

// Menu shows header and options and returns the 1-based choice, repeating
// until the answer names one of the options.
func (p *Prompter) Menu(header string, options []string) (int, error) {
	for {
		fmt.Fprint(p.out, RenderMenu(header, options))
		line, err := p.Line("Enter your Input: ")
		if err != nil {
			return 0, err
		}
		if choice, ok := Choose(line, options); ok {
			return choice, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please try again.")
	}
}
