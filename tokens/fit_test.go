package tokens

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"proompter/config"
	"proompter/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// charCounter charges one token per byte of content plus one per message.
type charCounter struct{}

func (charCounter) DialogCount(dialog []model.Message) int {
	total := 0
	for _, msg := range dialog {
		total += len(msg.Content) + 1
	}
	return total
}

func makeDialog(sizes ...int) []model.Message {
	dialog := make([]model.Message, len(sizes))
	for i, n := range sizes {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		dialog[i] = model.Message{Role: role, Content: strings.Repeat(string(rune('a'+i%26)), n)}
	}
	return dialog
}

func isSuffix(t *testing.T, full, part []model.Message) {
	t.Helper()
	require.LessOrEqual(t, len(part), len(full))
	offset := len(full) - len(part)
	for i := range part {
		assert.Equal(t, full[offset+i], part[i], "message %d is not the matching suffix element", i)
	}
}

func TestFitKeepsDialogUnderBudget(t *testing.T) {
	dialog := makeDialog(9, 9, 9) // 10 tokens each

	got, err := Fit(dialog, 100, charCounter{})
	require.NoError(t, err)
	assert.Equal(t, dialog, got)
}

func TestFitDropsOldestFirst(t *testing.T) {
	dialog := makeDialog(9, 9, 9, 9) // 40 tokens

	for _, budget := range []int{10, 15, 20, 29, 30, 39} {
		t.Run(fmt.Sprintf("budget_%d", budget), func(t *testing.T) {
			got, err := Fit(dialog, budget, charCounter{})
			require.NoError(t, err)
			assert.LessOrEqual(t, charCounter{}.DialogCount(got), budget)
			assert.Len(t, got, budget/10)
			isSuffix(t, dialog, got)
		})
	}
}

func TestFitFailsWhenNewestMessageAloneIsTooLong(t *testing.T) {
	dialog := makeDialog(1, 1, 50)

	_, err := Fit(dialog, 20, charCounter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrPromptTooLong))

	var tooLong *model.PromptTooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 51, tooLong.Tokens)
	assert.Equal(t, 20, tooLong.Budget)
}

func TestFitEmptyDialog(t *testing.T) {
	_, err := Fit(nil, 100, charCounter{})
	assert.True(t, errors.Is(err, model.ErrPromptTooLong))
}

func TestFitCapsMessageCount(t *testing.T) {
	sizes := make([]int, config.MaxRequestMessages+7)
	dialog := makeDialog(sizes...)

	got, err := Fit(dialog, 1<<20, charCounter{})
	require.NoError(t, err)
	assert.Len(t, got, config.MaxRequestMessages)
	isSuffix(t, dialog, got)
}

func TestFitPinnedKeepsSystemPrompt(t *testing.T) {
	system := []model.Message{model.SystemMessage(strings.Repeat("s", 9))}
	dialog := makeDialog(9, 9, 9)

	got, err := FitPinned(system, dialog, 30, charCounter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, model.RoleSystem, got[0].Role)
	isSuffix(t, dialog, got[1:])

	_, err = FitPinned(system, makeDialog(15), 20, charCounter{})
	assert.True(t, errors.Is(err, model.ErrPromptTooLong))
}

func TestFitWithEstimator(t *testing.T) {
	est, err := NewEstimator("gpt-3.5-turbo")
	require.NoError(t, err)

	dialog := []model.Message{
		model.UserMessage(strings.Repeat("history ", 200)),
		model.AssistantMessage("ok"),
		model.UserMessage("what now?"),
	}

	budget := est.DialogCount(dialog[1:])
	got, err := Fit(dialog, budget, est)
	require.NoError(t, err)
	assert.Equal(t, dialog[1:], got)
}
