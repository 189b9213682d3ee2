package highlight

import "regexp"

// Names of the built-in rule sets.
const (
	Kotlin = "kotlin"
	Java   = "java"
	Python = "python"
	C      = "c"
)

// BuiltinNames lists the built-in languages in display order.
var BuiltinNames = []string{Kotlin, Java, Python, C}

var (
	doubleQuoted   = regexp.MustCompile(`".*?"`)
	slashComment   = regexp.MustCompile(`(?m)//.*?$`)
	pythonStrings  = regexp.MustCompile(`(?s)""".*?"""|'''.*?'''|".*?"|'.*?'`)
	hashComment    = regexp.MustCompile(`(?m)#.*?$`)
	cStrings       = regexp.MustCompile(`"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'`)
	cComments      = regexp.MustCompile(`(?s:/\*.*?\*/)|(?m://.*?$)`)
	builtinFactory = map[string]func() *RuleSet{
		Kotlin: KotlinRules,
		Java:   JavaRules,
		Python: PythonRules,
		C:      CRules,
	}
)

// KotlinRules returns the built-in Kotlin rule set.
func KotlinRules() *RuleSet {
	return mustRuleSet(Kotlin, []string{
		"fun", "val", "var", "if", "else", "for", "while", "class", "object",
		"package", "import", "return", "when", "try", "catch", "finally",
		"do", "is", "in", "as", "break", "continue", "throw", "super", "this",
	}, doubleQuoted, slashComment)
}

// JavaRules returns the built-in Java rule set.
func JavaRules() *RuleSet {
	return mustRuleSet(Java, []string{
		"class", "public", "static", "void", "int", "double", "new", "if", "else",
		"for", "while", "return", "try", "catch", "finally", "import", "package",
	}, doubleQuoted, slashComment)
}

// PythonRules returns the built-in Python rule set.
func PythonRules() *RuleSet {
	return mustRuleSet(Python, []string{
		"def", "return", "if", "elif", "else", "for", "while", "import", "as",
		"from", "class", "try", "except", "finally", "with", "lambda", "pass",
	}, pythonStrings, hashComment)
}

// CRules returns the built-in C rule set.
func CRules() *RuleSet {
	return mustRuleSet(C, []string{
		"auto", "break", "case", "char", "const", "continue", "default", "do",
		"double", "else", "enum", "extern", "float", "for", "goto", "if",
		"int", "long", "register", "return", "short", "signed", "sizeof",
		"static", "struct", "switch", "typedef", "union", "unsigned", "void",
		"volatile", "while",
	}, cStrings, cComments)
}

// Builtin returns the built-in rule set for name.
func Builtin(name string) (*RuleSet, bool) {
	f, ok := builtinFactory[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// IsBuiltin reports whether name is a built-in language.
func IsBuiltin(name string) bool {
	_, ok := builtinFactory[name]
	return ok
}

func mustRuleSet(name string, keywords []string, str, comment *regexp.Regexp) *RuleSet {
	rs, err := NewRuleSet(name, keywords, str, comment)
	if err != nil {
		panic(err)
	}
	return rs
}
