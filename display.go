// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import "fmt"

// Button is an option a Displayer presents to the user together with a
// message.
type Button struct {
	Label string

	// Press resumes the test which displayed the message with the
	// continuation associated with this button.  Only the first press
	// of any of a message's buttons resumes the test, all further
	// presses fail with ErrResumed.
	Press func() error
}

// Displayer is implemented by interactive drivers of a Runner which are
// able to present a message and a set of buttons to a user.  A
// Displayer must eventually press exactly one of the buttons, either
// from within DisplayMessage or later from any goroutine; otherwise the
// displaying test stays suspended.
type Displayer interface {
	DisplayMessage(message string, buttons []Button) error
}

// Action associates a button label with the continuation a test is
// resumed with if the button is pressed.
type Action struct {
	Label string
	Body  Body
}

// Display suspends the executed test and asks the runner's Displayer to
// present given message with a button for each of given actions; the
// test resumes with the continuation of the pressed button's action.
// Display returns ErrPending which the calling body should return.
// Display fails with ErrCannotDisplay if the runner has no Displayer and
// with a usage error if there are no actions.
//
//	return c.Display("Is the dialog centered?",
//	    crucible.Action{Label: "Yes", Body: func(*crucible.Context) error {
//	        return nil
//	    }},
//	    crucible.Action{Label: "No", Body: func(c *crucible.Context) error {
//	        c.Fail("dialog is not centered")
//	        return nil
//	    }})
func (c *Context) Display(message string, actions ...Action) error {
	if c.unit == nil || c.unit.runner.displayer == nil {
		return ErrCannotDisplay
	}
	if len(actions) == 0 {
		return fmt.Errorf("%w: display without actions", ErrUsage)
	}
	r := c.Async()
	bb := make([]Button, len(actions))
	for i, a := range actions {
		if a.Body == nil {
			return fmt.Errorf("%w: action %q has no body", ErrUsage, a.Label)
		}
		body := a.Body
		bb[i] = Button{Label: a.Label, Press: func() error {
			return r.Resume(body)
		}}
	}
	if err := c.unit.runner.displayer.DisplayMessage(message, bb); err != nil {
		return err
	}
	return ErrPending
}

// Verify displays given question with the buttons "Yes" and "No"; the
// test passes if the user answers "Yes" and fails otherwise.  Verify
// returns ErrPending which the calling body should return.
func (c *Context) Verify(question string) error {
	return c.Display(question,
		Action{Label: "Yes", Body: func(*Context) error { return nil }},
		Action{Label: "No", Body: func(c *Context) error {
			return NewFailure(c.test, fmt.Sprintf(
				"Verification %q was answered with no.", question))
		}},
	)
}
