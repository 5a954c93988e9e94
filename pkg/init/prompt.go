package init

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// InteractivePrompt handles interactive user input
type InteractivePrompt struct {
	scanner *bufio.Scanner
	out     io.Writer

	// stdinFd is the terminal descriptor used for hidden password input, or -1
	stdinFd int
}

// NewInteractivePrompt creates a new InteractivePrompt reading from stdin
func NewInteractivePrompt() *InteractivePrompt {
	p := NewInteractivePromptWithIO(os.Stdin, os.Stdout)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		p.stdinFd = fd
	}
	return p
}

// NewInteractivePromptWithIO creates a prompt on arbitrary streams. Passwords
// are read as plain lines.
func NewInteractivePromptWithIO(in io.Reader, out io.Writer) *InteractivePrompt {
	return &InteractivePrompt{
		scanner: bufio.NewScanner(in),
		out:     out,
		stdinFd: -1,
	}
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file
func (p *InteractivePrompt) ConfirmOverwrite(path string) bool {
	fmt.Fprintf(p.out, "Configuration file %s already exists.\n", path)
	return p.Confirm("Do you want to overwrite it?", false)
}

// Confirm asks a yes/no question. An empty answer picks defaultYes.
func (p *InteractivePrompt) Confirm(question string, defaultYes bool) bool {
	hint := "(y/N)"
	if defaultYes {
		hint = "(Y/n)"
	}
	fmt.Fprintf(p.out, "%s %s: ", question, hint)

	if p.scanner.Scan() {
		response := strings.ToLower(strings.TrimSpace(p.scanner.Text()))
		if response == "" {
			return defaultYes
		}
		return response == "y" || response == "yes"
	}

	return false
}

// GetStringInput prompts for a string input with an optional default value
func (p *InteractivePrompt) GetStringInput(prompt string, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s (default: %s): ", prompt, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	if p.scanner.Scan() {
		input := strings.TrimSpace(p.scanner.Text())
		if input == "" && defaultValue != "" {
			return defaultValue
		}
		return input
	}

	return defaultValue
}

// GetPasswordInput prompts for a password. On a terminal the input is not
// echoed. An empty answer keeps current.
func (p *InteractivePrompt) GetPasswordInput(prompt string, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(p.out, "%s (leave empty to keep the current one): ", prompt)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	var input string
	if p.stdinFd >= 0 {
		data, err := term.ReadPassword(p.stdinFd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", NewFileSystemError("failed to read password", err)
		}
		input = string(data)
	} else if p.scanner.Scan() {
		input = p.scanner.Text()
	}

	input = strings.TrimRight(input, "\r\n")
	if input == "" {
		return current, nil
	}
	return input, nil
}

// SelectOption presents numbered options and returns the chosen one.
// An empty answer or an invalid choice returns defaultValue.
func (p *InteractivePrompt) SelectOption(prompt string, options []string, defaultValue string) string {
	if len(options) == 0 {
		return defaultValue
	}

	fmt.Fprintf(p.out, "\n%s:\n", prompt)
	for i, opt := range options {
		marker := " "
		if opt == defaultValue {
			marker = "*"
		}
		fmt.Fprintf(p.out, "%s %d. %s\n", marker, i+1, opt)
	}
	fmt.Fprintf(p.out, "Select (1-%d): ", len(options))

	if p.scanner.Scan() {
		input := strings.TrimSpace(p.scanner.Text())
		if input == "" {
			return defaultValue
		}

		if choice, err := strconv.Atoi(input); err == nil && choice >= 1 && choice <= len(options) {
			return options[choice-1]
		}

		for _, opt := range options {
			if strings.EqualFold(opt, input) {
				return opt
			}
		}
	}

	fmt.Fprintf(p.out, "Invalid selection, using %s.\n", defaultValue)
	return defaultValue
}

// GetListInput prompts for a comma separated list
func (p *InteractivePrompt) GetListInput(prompt string, defaultValue []string) []string {
	answer := p.GetStringInput(prompt, strings.Join(defaultValue, ", "))
	if answer == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(answer, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
