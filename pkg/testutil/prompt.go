package testutil

import (
	"github.com/happenslol/dotgirl/pkg/errors"
)

// ScriptedPrompt implements types.Prompt with pre-recorded answers. Every
// interaction is appended to Messages, so tests can assert both which
// prompts were shown and that none were shown at all. Running out of
// scripted answers fails the interaction, which surfaces as an ENVIRONMENT
// error from the operation under test.
type ScriptedPrompt struct {
	ConfirmAnswers []bool
	SelectAnswers  []int

	// Messages records every prompt message in call order
	Messages []string
}

// NewScriptedPrompt creates a prompt with the given scripted answers
func NewScriptedPrompt(confirms []bool, selects []int) *ScriptedPrompt {
	return &ScriptedPrompt{ConfirmAnswers: confirms, SelectAnswers: selects}
}

func (p *ScriptedPrompt) Confirm(message string) (bool, error) {
	p.Messages = append(p.Messages, message)
	if len(p.ConfirmAnswers) == 0 {
		return false, errors.Newf(errors.ErrEnvironment, "unexpected confirm prompt: %s", message)
	}

	answer := p.ConfirmAnswers[0]
	p.ConfirmAnswers = p.ConfirmAnswers[1:]
	return answer, nil
}

func (p *ScriptedPrompt) Select(message string, choices []string) (int, error) {
	p.Messages = append(p.Messages, message)
	if len(p.SelectAnswers) == 0 {
		return 0, errors.Newf(errors.ErrEnvironment, "unexpected select prompt: %s", message)
	}

	answer := p.SelectAnswers[0]
	p.SelectAnswers = p.SelectAnswers[1:]
	if answer < 0 || answer >= len(choices) {
		return 0, errors.Newf(errors.ErrEnvironment, "scripted answer %d out of range for %d choices", answer, len(choices))
	}
	return answer, nil
}
