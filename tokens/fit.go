package tokens

import (
	"proompter/config"
	"proompter/model"
)

// DialogCounter estimates the encoded size of a dialog.
type DialogCounter interface {
	DialogCount(dialog []model.Message) int
}

// Fit returns the longest suffix of dialog that holds at most
// config.MaxRequestMessages messages and whose estimate is within budget.
// Messages are only ever removed from the front. If even the newest message
// alone exceeds the budget, Fit fails with a *model.PromptTooLongError.
func Fit(dialog []model.Message, budget int, counter DialogCounter) ([]model.Message, error) {
	return FitPinned(nil, dialog, budget, counter)
}

// FitPinned is Fit with a pinned head (the system prompt) that is never
// dropped but always counts against the budget. The result is pinned
// followed by a non-empty suffix of dialog.
func FitPinned(pinned, dialog []model.Message, budget int, counter DialogCounter) ([]model.Message, error) {
	window := model.Tail(dialog, config.MaxRequestMessages)

	build := func(suffix []model.Message) []model.Message {
		out := make([]model.Message, 0, len(pinned)+len(suffix))
		out = append(out, pinned...)
		return append(out, suffix...)
	}

	for len(window) > 0 {
		candidate := build(window)
		if counter.DialogCount(candidate) <= budget {
			if dropped := len(dialog) - len(window); dropped > 0 {
				config.Debugf("[Tokens] trimmed %d oldest message(s) to fit %d token budget", dropped, budget)
			}
			return candidate, nil
		}
		window = window[1:]
	}

	tokens := 0
	if len(dialog) > 0 {
		tokens = counter.DialogCount(build(dialog[len(dialog)-1:]))
	}
	return nil, &model.PromptTooLongError{Tokens: tokens, Budget: budget}
}
