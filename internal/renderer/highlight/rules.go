package highlight

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Errors returned when building rule sets.
var (
	ErrEmptyName      = errors.New("rule set name is empty")
	ErrMissingPattern = errors.New("rule set pattern is missing")
)

// RuleSet is a named keyword list plus string and comment patterns.
// A RuleSet is immutable once built and safe to share.
type RuleSet struct {
	name           string
	keywords       []string
	keywordSet     map[string]bool
	keywordPattern *regexp.Regexp
	stringPattern  *regexp.Regexp
	commentPattern *regexp.Regexp
}

// NewRuleSet builds a rule set from already compiled patterns.
// Duplicate and empty keywords are dropped; order is otherwise kept.
func NewRuleSet(name string, keywords []string, stringPattern, commentPattern *regexp.Regexp) (*RuleSet, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if stringPattern == nil || commentPattern == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingPattern)
	}

	rs := &RuleSet{
		name:           name,
		keywordSet:     make(map[string]bool, len(keywords)),
		stringPattern:  stringPattern,
		commentPattern: commentPattern,
	}

	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" || rs.keywordSet[kw] {
			continue
		}
		rs.keywordSet[kw] = true
		rs.keywords = append(rs.keywords, kw)
		quoted = append(quoted, regexp.QuoteMeta(kw))
	}

	if len(quoted) > 0 {
		re, err := regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("%s: keyword pattern: %w", name, err)
		}
		rs.keywordPattern = re
	}

	return rs, nil
}

// CompileRuleSet builds a rule set from pattern sources.
// The string pattern is compiled so that '.' also matches newlines and the
// comment pattern so that '^' and '$' match at line boundaries.
func CompileRuleSet(name string, keywords []string, stringSrc, commentSrc string) (*RuleSet, error) {
	strRe, err := regexp.Compile("(?s)" + stringSrc)
	if err != nil {
		return nil, fmt.Errorf("%s: string pattern: %w", name, err)
	}
	commentRe, err := regexp.Compile("(?m)" + commentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s: comment pattern: %w", name, err)
	}
	return NewRuleSet(name, keywords, strRe, commentRe)
}

// Name returns the rule set name.
func (rs *RuleSet) Name() string {
	return rs.name
}

// Keywords returns a copy of the keyword list.
func (rs *RuleSet) Keywords() []string {
	out := make([]string, len(rs.keywords))
	copy(out, rs.keywords)
	return out
}

// StringPattern returns the string literal pattern.
func (rs *RuleSet) StringPattern() *regexp.Regexp {
	return rs.stringPattern
}

// CommentPattern returns the comment pattern.
func (rs *RuleSet) CommentPattern() *regexp.Regexp {
	return rs.commentPattern
}
