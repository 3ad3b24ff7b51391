package view

// AnswerSurface resolves every confirmation as soon as it is shown, with a
// fixed answer. It backs non-interactive edits.
type AnswerSurface struct {
	Answer bool
}

// Show implements Surface.
func (s AnswerSurface) Show(c *Confirmation) {
	if s.Answer {
		c.Confirm()
		return
	}
	c.Cancel()
}

// Hide implements Surface.
func (s AnswerSurface) Hide() {}
