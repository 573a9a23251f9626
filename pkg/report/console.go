// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/slukits/crucible"
)

// ErrNoChoice is returned by a Console whose input ended before a
// button was chosen.
var ErrNoChoice = errors.New("report: input ended without a choice")

// Console implements crucible.Displayer: it prints a message followed
// by its numbered buttons and reads the user's choice line by line.  A
// line chooses a button by its number or its case-insensitive label;
// other lines are rejected and the user is asked again.
type Console struct {
	mutex sync.Mutex
	in    *bufio.Reader
	out   io.Writer
}

// NewConsole creates a console reading choices from given reader and
// printing messages to given writer.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// DisplayMessage prints given message and buttons and presses the
// chosen button before it returns.
func (c *Console) DisplayMessage(
	message string, buttons []crucible.Button,
) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	fmt.Fprintln(c.out, message)
	for i, b := range buttons {
		fmt.Fprintf(c.out, "  [%d] %s\n", i+1, b.Label)
	}
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if choice := strings.TrimSpace(line); choice != "" {
			if b, ok := chosen(choice, buttons); ok {
				return b.Press()
			}
			fmt.Fprintf(c.out, "unknown choice %q\n", choice)
		}
		if err == io.EOF {
			return ErrNoChoice
		}
		if err != nil {
			return err
		}
	}
}

func chosen(choice string, buttons []crucible.Button) (crucible.Button, bool) {
	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(buttons) {
			return crucible.Button{}, false
		}
		return buttons[n-1], true
	}
	for _, b := range buttons {
		if strings.EqualFold(b.Label, choice) {
			return b, true
		}
	}
	return crucible.Button{}, false
}
