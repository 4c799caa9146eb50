// Package prompts loads named prompt templates ("proompts").
//
// A template name maps to up to three files in the proompts directory:
//
//	<name>.tmpl          system prompt
//	<name>.prefix.tmpl   prepended to the user prompt
//	<name>.postfix.tmpl  appended to the user prompt
//
// Files are rendered with text/template and the fields of Params
// ({{.Platform}}, {{.Shell}}). Files with a .jinja2 extension are accepted
// too; their {{ platform }} and {{ shell }} placeholders are rewritten first.
package prompts

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"proompter/config"
	"proompter/model"

	"github.com/sahilm/fuzzy"
)

// Slot selects which part of a template set to load.
type Slot int

const (
	System Slot = iota
	Prefix
	Postfix
)

func (s Slot) suffix() string {
	switch s {
	case Prefix:
		return ".prefix"
	case Postfix:
		return ".postfix"
	default:
		return ""
	}
}

func (s Slot) String() string {
	switch s {
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	default:
		return "system"
	}
}

var extensions = []string{".tmpl", ".jinja2"}

// Params are the values available to every template.
type Params struct {
	Platform string
	Shell    string
}

// Set holds the rendered parts of one named template.
type Set struct {
	System  string
	Prefix  string
	Postfix string
}

// Wrap applies the prefix and postfix to a user prompt.
func (s Set) Wrap(prompt string) string {
	if s.Prefix != "" {
		prompt = s.Prefix + "\n\n" + prompt
	}
	if s.Postfix != "" {
		prompt += "\n\n" + s.Postfix
	}
	return prompt
}

type Loader struct {
	dir    string
	params Params
}

func NewLoader(dir string, params Params) *Loader {
	return &Loader{dir: dir, params: params}
}

func (l *Loader) Dir() string { return l.dir }

// LoadSet renders all three slots of name. An empty name yields an empty Set.
// A name with no files at all is a *model.TemplateNotFoundError, except for
// the default template, which is optional.
func (l *Loader) LoadSet(name string) (Set, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Set{}, nil
	}

	var set Set
	found := false
	for _, slot := range []Slot{System, Prefix, Postfix} {
		text, ok, err := l.load(name, slot)
		if err != nil {
			return Set{}, err
		}
		found = found || ok
		switch slot {
		case System:
			set.System = text
		case Prefix:
			set.Prefix = text
		case Postfix:
			set.Postfix = text
		}
	}

	if !found && name != config.DefaultTemplate {
		return Set{}, &model.TemplateNotFoundError{Name: name, Suggestions: l.Suggest(name)}
	}

	config.Debugf("[Prompts] loaded template %q (system=%t prefix=%t postfix=%t)",
		name, set.System != "", set.Prefix != "", set.Postfix != "")
	return set, nil
}

// Load renders one slot of name. A missing slot file yields "".
func (l *Loader) Load(name string, slot Slot) (string, error) {
	text, _, err := l.load(name, slot)
	return text, err
}

func (l *Loader) load(name string, slot Slot) (string, bool, error) {
	if strings.ContainsAny(name, `/\`) {
		return "", false, fmt.Errorf("invalid template name %q", name)
	}

	for _, ext := range extensions {
		path := filepath.Join(l.dir, name+slot.suffix()+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("failed to read %s template: %w", slot, err)
		}

		text := string(data)
		if ext == ".jinja2" {
			text = convertJinja(text)
		}
		rendered, err := Render(filepath.Base(path), text, l.params)
		if err != nil {
			return "", false, err
		}
		return strings.TrimSpace(rendered), true, nil
	}
	return "", false, nil
}

// Names lists the template names present in the proompts directory.
func (l *Loader) Names() []string {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base := entry.Name()
		ok := false
		for _, ext := range extensions {
			if trimmed, cut := strings.CutSuffix(base, ext); cut {
				base, ok = trimmed, true
				break
			}
		}
		if !ok {
			continue
		}
		base = strings.TrimSuffix(strings.TrimSuffix(base, Prefix.suffix()), Postfix.suffix())
		if base != "" && !seen[base] {
			seen[base] = true
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names
}

// Suggest returns up to three known template names fuzzily matching name.
func (l *Loader) Suggest(name string) []string {
	matches := fuzzy.Find(name, l.Names())
	var out []string
	for i, m := range matches {
		if i == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// Render executes a template body with params.
func Render(name, text string, params Params) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

var jinjaVarRe = regexp.MustCompile(`\{\{\s*(platform|shell)\s*\}\}`)

func convertJinja(text string) string {
	return jinjaVarRe.ReplaceAllStringFunc(text, func(m string) string {
		if strings.Contains(m, "platform") {
			return "{{.Platform}}"
		}
		return "{{.Shell}}"
	})
}

// ResolveOverride returns the contents of value when it names a readable
// file, and value itself otherwise. The result is trimmed.
func ResolveOverride(value string) (string, error) {
	path := config.ExpandPath(value)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return strings.TrimSpace(value), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt override %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
