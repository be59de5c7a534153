package command

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vibe-cli/vibe/internal/logging"
	"github.com/vibe-cli/vibe/internal/shell"
)

// packFile is the on-disk shape of a user phrase pack:
//
//	phrases:
//	  deploy prod: npm run deploy -- --prod
//	  serve here: python3 -m http.server 8080
//	  ship it: ["git", "push", "origin", "main"]
//
// A string value is parsed with the shell grammar: a single plain call
// becomes an argv template, anything needing shell features becomes a
// shell template. A list value is taken as argv verbatim. User packs
// cannot define generators.
type packFile struct {
	Phrases map[string]yaml.Node `yaml:"phrases"`
}

// LoadPacks reads user-defined phrases from path. A missing file is an
// empty table. Individual bad entries are skipped with a warning so
// one typo cannot take down the rest of the pack.
func LoadPacks(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New("user"), nil
		}
		return nil, fmt.Errorf("read phrases: %w", err)
	}

	var pf packFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse phrases: %w", err)
	}

	t := New("user")
	phrases := make([]string, 0, len(pf.Phrases))
	for phrase := range pf.Phrases {
		phrases = append(phrases, phrase)
	}
	sort.Strings(phrases)

	for _, phrase := range phrases {
		node := pf.Phrases[phrase]
		tpl, err := packTemplate(&node)
		if err == nil {
			err = t.Register(phrase, tpl)
		}
		if err != nil {
			logging.Warn().Err(err).Str("phrase", phrase).Msg("skipping phrase pack entry")
		}
	}
	return t, nil
}

func packTemplate(node *yaml.Node) (Template, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var line string
		if err := node.Decode(&line); err != nil {
			return Template{}, err
		}
		parsed, err := shell.Parse(line)
		if err != nil {
			return Template{}, err
		}
		if parsed.Plain {
			return NewArgv(parsed.Argv...)
		}
		return NewShell(line)
	case yaml.SequenceNode:
		var words []string
		if err := node.Decode(&words); err != nil {
			return Template{}, err
		}
		return NewArgv(words...)
	}
	return Template{}, fmt.Errorf("phrase value must be a string or a list of strings")
}
