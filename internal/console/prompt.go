package console

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when a question is asked but the console has no
// input stream.
var ErrNoInput = errors.New("console has no input")

// Ask implements session.Prompter. An empty answer selects def.
func (c *Console) Ask(question, def string) (string, error) {
	prompt := c.paint(styleSection, question)
	if def != "" {
		prompt += fmt.Sprintf(" [%s]", c.paint(styleComment, def))
	}
	answer, err := c.readLine(prompt + ": ")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm implements session.Prompter. It accepts y/yes and n/no in any
// case; anything else selects def.
func (c *Console) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	answer, err := c.readLine(fmt.Sprintf("%s [%s]: ", c.paint(styleSection, question), hint))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return def, nil
}

func (c *Console) readLine(prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.in == nil {
		return "", ErrNoInput
	}
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
