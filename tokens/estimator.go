// Package tokens estimates request sizes in model tokens and trims dialogs
// to fit a token budget.
//
// Counts come from the tiktoken encoding registered for the model family.
// Dialog totals add a fixed per-message overhead for the role/content
// framing of the chat wire format; they are estimates for staying under a
// context window and must not be treated as authoritative for billing.
package tokens

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"proompter/config"
	"proompter/model"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const (
	// DefaultEncoding is used for models without a registered tokenizer.
	DefaultEncoding = "cl100k_base"

	// MessageOverhead approximates the framing tokens added around each message.
	MessageOverhead = 4
)

var ErrUnsupportedModel = errors.New("unsupported model")

// UnsupportedModelError is returned when no tokenizer is registered for a model.
type UnsupportedModelError struct {
	Model string
	Err   error
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("no tokenizer for model %q: %v", e.Model, e.Err)
}

func (e *UnsupportedModelError) Unwrap() error { return ErrUnsupportedModel }

func init() {
	// Encodings are embedded in the binary; nothing is fetched at runtime.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

var (
	encMu    sync.Mutex
	encCache = map[string]*tiktoken.Tiktoken{}
)

func encodingForModel(modelName string) (*tiktoken.Tiktoken, error) {
	encMu.Lock()
	defer encMu.Unlock()

	if enc, ok := encCache[modelName]; ok {
		return enc, nil
	}
	name, ok := encodingName(modelName)
	if !ok {
		return nil, &UnsupportedModelError{Model: modelName, Err: fmt.Errorf("no encoding for model %s", modelName)}
	}
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding for model %q: %w", name, modelName, err)
	}
	encCache[modelName] = enc
	return enc, nil
}

// encodingName resolves modelName the way tiktoken does: exact name first,
// then the longest matching prefix.
func encodingName(modelName string) (string, bool) {
	if name, ok := tiktoken.MODEL_TO_ENCODING[modelName]; ok {
		return name, true
	}
	best, name := "", ""
	for prefix, enc := range tiktoken.MODEL_PREFIX_TO_ENCODING {
		if strings.HasPrefix(modelName, prefix) && len(prefix) > len(best) {
			best, name = prefix, enc
		}
	}
	return name, best != ""
}

func defaultEncoding() (*tiktoken.Tiktoken, error) {
	encMu.Lock()
	defer encMu.Unlock()

	key := "encoding:" + DefaultEncoding
	if enc, ok := encCache[key]; ok {
		return enc, nil
	}
	enc, err := tiktoken.GetEncoding(DefaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", DefaultEncoding, err)
	}
	encCache[key] = enc
	return enc, nil
}

// Count returns the number of tokens in text under the tokenizer for modelName.
func Count(text, modelName string) (int, error) {
	enc, err := encodingForModel(modelName)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// DialogCount sums role and content tokens plus MessageOverhead per message.
func DialogCount(dialog []model.Message, modelName string) (int, error) {
	enc, err := encodingForModel(modelName)
	if err != nil {
		return 0, err
	}
	return dialogCount(enc, dialog), nil
}

func dialogCount(enc *tiktoken.Tiktoken, dialog []model.Message) int {
	total := 0
	for _, msg := range dialog {
		total += MessageOverhead
		total += len(enc.Encode(string(msg.Role), nil, nil))
		total += len(enc.Encode(msg.Content, nil, nil))
	}
	return total
}

// Estimator counts tokens for one model, falling back to DefaultEncoding
// when the model has no registered tokenizer.
type Estimator struct {
	model    string
	enc      *tiktoken.Tiktoken
	fallback bool
}

// NewEstimator never fails for an unknown model; it only fails if the
// default encoding itself cannot be loaded.
func NewEstimator(modelName string) (*Estimator, error) {
	enc, err := encodingForModel(modelName)
	if err == nil {
		return &Estimator{model: modelName, enc: enc}, nil
	}
	if !errors.Is(err, ErrUnsupportedModel) {
		return nil, err
	}

	config.Debugf("[Tokens] %v; falling back to %s", err, DefaultEncoding)

	enc, err = defaultEncoding()
	if err != nil {
		return nil, err
	}
	return &Estimator{model: modelName, enc: enc, fallback: true}, nil
}

func (e *Estimator) Model() string { return e.model }

// Fallback reports whether the default encoding is standing in for the model's own.
func (e *Estimator) Fallback() bool { return e.fallback }

func (e *Estimator) Count(text string) int {
	return len(e.enc.Encode(text, nil, nil))
}

func (e *Estimator) DialogCount(dialog []model.Message) int {
	return dialogCount(e.enc, dialog)
}
