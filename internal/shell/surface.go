package shell

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/output"
	"taskboard/internal/view"
)

// ConfirmPrompt is shown while a confirmation is open.
const ConfirmPrompt = "confirm [y/n]> "

// PromptSurface presents confirmations as a terminal prompt.
//
// "y" or "yes" confirms, "n" or "no" cancels. An empty answer, Ctrl-C or
// EOF dismisses the dialog. Anything else asks again.
type PromptSurface struct {
	in  LineReader
	out io.Writer
}

// NewPromptSurface creates a surface reading answers from in.
func NewPromptSurface(in LineReader, out io.Writer) *PromptSurface {
	return &PromptSurface{in: in, out: out}
}

// Show implements view.Surface. It blocks until c is resolved.
func (s *PromptSurface) Show(c *view.Confirmation) {
	output.FormatConfirm(s.out, c.Task())

	for {
		answer, err := s.in.Prompt(ConfirmPrompt)
		if err != nil {
			fmt.Fprintln(s.out)
			c.Dismiss()
			return
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			c.Confirm()
			return
		case "n", "no":
			c.Cancel()
			return
		case "":
			c.Dismiss()
			return
		default:
			fmt.Fprintln(s.out, "Please enter y or n.")
		}
	}
}

// Hide implements view.Surface.
func (s *PromptSurface) Hide() {}
