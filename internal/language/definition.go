// Package language manages syntax rule sets: the built-ins, user supplied
// definitions in JSON, YAML or Lua form, their persistence, and detection of
// a document's language from its file name.
package language

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/PasinduAnjana/TextEditor/internal/renderer/highlight"
)

// Definition is the serializable form of a language rule set.
// Patterns are kept as source so the definition can be stored again.
type Definition struct {
	Name           string   `json:"name" yaml:"name"`
	Keywords       []string `json:"keywords" yaml:"keywords"`
	StringPattern  string   `json:"stringPattern" yaml:"stringPattern"`
	CommentPattern string   `json:"commentPattern" yaml:"commentPattern"`
}

// Compile builds the rule set. The string pattern is compiled in
// dot-matches-newline mode and the comment pattern in multi-line mode.
func (d Definition) Compile() (*highlight.RuleSet, error) {
	if d.Name == "" {
		return nil, fieldError("name", errMissing)
	}
	rs, err := highlight.CompileRuleSet(d.Name, d.Keywords, d.StringPattern, d.CommentPattern)
	if err != nil {
		return nil, &DefinitionError{Source: d.Name, Err: err}
	}
	return rs, nil
}

// Encode returns the canonical, indented JSON form of the definition.
func (d Definition) Encode() ([]byte, error) {
	keywords := d.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	out := []byte(`{}`)
	var err error
	for _, kv := range []struct {
		path  string
		value any
	}{
		{"name", d.Name},
		{"keywords", keywords},
		{"stringPattern", d.StringPattern},
		{"commentPattern", d.CommentPattern},
	} {
		out, err = sjson.SetBytes(out, kv.path, kv.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", kv.path, err)
		}
	}
	return pretty.Pretty(out), nil
}

// ParseJSON parses a definition of the form
//
//	{"name": "...", "keywords": ["..."], "stringPattern": "...", "commentPattern": "..."}
//
// Every field is required and must have the shown type. The patterns must
// compile; a definition that fails any check is rejected as a whole.
func ParseJSON(data []byte) (Definition, error) {
	if !gjson.ValidBytes(data) {
		return Definition{}, &DefinitionError{Err: errMalformed}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Definition{}, &DefinitionError{Err: errMalformed}
	}

	var def Definition
	var err error

	if def.Name, err = jsonString(root, "name"); err != nil {
		return Definition{}, err
	}

	kw := root.Get("keywords")
	if !kw.Exists() {
		return Definition{}, fieldError("keywords", errMissing)
	}
	if !kw.IsArray() {
		return Definition{}, fieldError("keywords", errWrongType)
	}
	def.Keywords = []string{}
	for _, item := range kw.Array() {
		if item.Type != gjson.String {
			return Definition{}, fieldError("keywords", errWrongType)
		}
		def.Keywords = append(def.Keywords, item.Str)
	}

	if def.StringPattern, err = jsonString(root, "stringPattern"); err != nil {
		return Definition{}, err
	}
	if def.CommentPattern, err = jsonString(root, "commentPattern"); err != nil {
		return Definition{}, err
	}

	return def, validate(def)
}

func jsonString(root gjson.Result, field string) (string, error) {
	v := root.Get(field)
	if !v.Exists() {
		return "", fieldError(field, errMissing)
	}
	if v.Type != gjson.String {
		return "", fieldError(field, errWrongType)
	}
	return v.Str, nil
}

// yamlDefinition keeps the raw nodes so that missing fields and values of
// the wrong type are reported the same way as in ParseJSON. Decoding into
// strings directly would accept numbers and booleans.
type yamlDefinition struct {
	Name           yaml.Node `yaml:"name"`
	Keywords       yaml.Node `yaml:"keywords"`
	StringPattern  yaml.Node `yaml:"stringPattern"`
	CommentPattern yaml.Node `yaml:"commentPattern"`
}

// ParseYAML parses a definition with the same fields as ParseJSON.
func ParseYAML(data []byte) (Definition, error) {
	var raw yamlDefinition
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Definition{}, &DefinitionError{Err: err}
	}

	var (
		def Definition
		err error
	)
	if def.Name, err = yamlString(&raw.Name, "name"); err != nil {
		return Definition{}, err
	}
	if def.Keywords, err = yamlStrings(&raw.Keywords, "keywords"); err != nil {
		return Definition{}, err
	}
	if def.StringPattern, err = yamlString(&raw.StringPattern, "stringPattern"); err != nil {
		return Definition{}, err
	}
	if def.CommentPattern, err = yamlString(&raw.CommentPattern, "commentPattern"); err != nil {
		return Definition{}, err
	}
	return def, validate(def)
}

func yamlMissing(n *yaml.Node) bool {
	return n.Kind == 0 || n.ShortTag() == "!!null"
}

func yamlString(n *yaml.Node, field string) (string, error) {
	if yamlMissing(n) {
		return "", fieldError(field, errMissing)
	}
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", fieldError(field, errWrongType)
	}
	return n.Value, nil
}

func yamlStrings(n *yaml.Node, field string) ([]string, error) {
	if yamlMissing(n) {
		return nil, fieldError(field, errMissing)
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fieldError(field, errWrongType)
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			return nil, fieldError(field, errWrongType)
		}
		out = append(out, item.Value)
	}
	return out, nil
}

// ParseFile parses data according to the extension of filename:
// .json, .yaml or .yml, or .lua.
func ParseFile(filename string, data []byte) (Definition, error) {
	var (
		def Definition
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		def, err = ParseJSON(data)
	case ".yaml", ".yml":
		def, err = ParseYAML(data)
	case ".lua":
		def, err = ParseLua(string(data))
	default:
		return Definition{}, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
	if de, ok := err.(*DefinitionError); ok && de.Source == "" {
		de.Source = filepath.Base(filename)
	}
	return def, err
}

// validate checks the name and that both patterns compile.
func validate(def Definition) error {
	if err := checkName(def.Name); err != nil {
		return fieldError("name", err)
	}
	if _, err := def.Compile(); err != nil {
		return err
	}
	return nil
}

// checkName rejects names that are empty or cannot be used as a file name.
func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errMissing
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return ErrInvalidName
	}
	return nil
}
