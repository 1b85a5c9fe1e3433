package simple

import "github.com/glint-editor/glint/internal/highlight"

// Built-in grammars for the table-driven tokenizer. The shell grammar
// lives in its own package; everything here follows the same two-part
// contract (continuation handling plus single-line scan) with simpler
// construct sets.

// Go returns a tokenizer for Go source.
func Go() *Tokenizer {
	t := New("go", []string{".go"})

	t.AddMultiLine("/*", "*/", highlight.StyleComment, highlight.ContBlockComment)
	t.AddMultiLine("`", "`", highlight.StyleString, highlight.ContRawString)

	t.AddRule(`//.*$`, highlight.StyleComment)
	t.AddRule(`"(?:[^"\\]|\\.)*"`, highlight.StyleString)
	t.AddRule(`'(?:[^'\\]|\\.)+'`, highlight.StyleStringAlt)
	t.AddRule(`\b0[xX][0-9a-fA-F_]+\b`, highlight.StyleNumber)
	t.AddRule(`\b\d[\d_]*\.?[\d_]*(?:[eE][+-]?\d+)?\b`, highlight.StyleNumber)

	t.AddKeywords(highlight.StyleKeyword,
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select",
		"struct", "switch", "type", "var")
	t.AddKeywords(highlight.StyleBuiltin,
		"append", "cap", "close", "copy", "delete", "len", "make", "new",
		"panic", "recover", "print", "println", "min", "max", "clear",
		"true", "false", "nil", "iota",
		"bool", "byte", "error", "int", "int8", "int16", "int32", "int64",
		"rune", "string", "uint", "uint8", "uint16", "uint32", "uint64",
		"uintptr", "float32", "float64", "complex64", "complex128", "any")

	return t
}

// Python returns a tokenizer for Python source.
func Python() *Tokenizer {
	t := New("python", []string{".py", ".pyw", ".pyi"})

	t.AddMultiLine(`"""`, `"""`, highlight.StyleString, highlight.ContTripleString)
	t.AddMultiLine(`'''`, `'''`, highlight.StyleStringAlt, highlight.ContTripleStringAlt)

	t.AddRule(`#.*$`, highlight.StyleComment)
	t.AddRule(`"(?:[^"\\]|\\.)*"`, highlight.StyleString)
	t.AddRule(`'(?:[^'\\]|\\.)*'`, highlight.StyleStringAlt)
	t.AddRule(`\b0[xX][0-9a-fA-F]+\b`, highlight.StyleNumber)
	t.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?j?\b`, highlight.StyleNumber)
	t.AddRule(`@\w+`, highlight.StyleAttribute)

	t.AddKeywords(highlight.StyleKeyword,
		"if", "elif", "else", "for", "while", "break", "continue",
		"return", "try", "except", "finally", "raise", "with", "as",
		"match", "case", "def", "class", "lambda", "async", "await",
		"import", "from", "global", "nonlocal", "pass", "yield",
		"assert", "del", "in", "is", "not", "and", "or")
	t.AddKeywords(highlight.StyleBuiltin,
		"True", "False", "None", "print", "len", "range", "enumerate",
		"zip", "map", "filter", "open", "input", "isinstance", "super",
		"int", "float", "str", "bool", "list", "dict", "set", "tuple",
		"type", "object", "sorted", "reversed", "sum", "min", "max",
		"abs", "all", "any", "repr", "hash", "id", "iter", "next")

	return t
}

// JSON returns a tokenizer for JSON documents.
func JSON() *Tokenizer {
	t := New("json", []string{".json"})

	t.AddSubmatchRule(`("(?:[^"\\]|\\.)*")\s*:`, 1, highlight.StyleAttribute)
	t.AddRule(`"(?:[^"\\]|\\.)*"`, highlight.StyleString)
	t.AddRule(`-?\b\d+\.?\d*(?:[eE][+-]?\d+)?\b`, highlight.StyleNumber)

	t.AddKeywords(highlight.StyleBuiltin, "true", "false", "null")

	return t
}

// XML returns a tokenizer for XML and HTML-ish documents.
func XML() *Tokenizer {
	t := New("xml", []string{".xml", ".svg", ".html", ".htm", ".xhtml"})

	t.AddMultiLine("<!--", "-->", highlight.StyleComment, highlight.ContBlockComment)
	t.AddMultiLine("<![CDATA[", "]]>", highlight.StyleString, highlight.ContCDATA)

	t.AddRule(`"(?:[^"\\]|\\.)*"`, highlight.StyleString)
	t.AddRule(`'[^']*'`, highlight.StyleStringAlt)
	t.AddRule(`</?[A-Za-z][-A-Za-z0-9_:.]*|/?>`, highlight.StyleTag)
	t.AddRule(`\b[A-Za-z_][-A-Za-z0-9_:.]*=`, highlight.StyleAttribute)

	return t
}

// Markdown returns a tokenizer for Markdown documents.
func Markdown() *Tokenizer {
	t := New("markdown", []string{".md", ".markdown", ".mkd"})

	t.AddMultiLine("```", "```", highlight.StyleMarkupCode, highlight.ContFencedCode)

	t.AddRule(`^#{1,6}\s+.*$`, highlight.StyleMarkup)
	t.AddRule("`[^`]+`", highlight.StyleMarkupCode)
	t.AddRule(`\*\*[^*]+\*\*`, highlight.StyleMarkup)
	t.AddRule(`__[^_]+__`, highlight.StyleMarkup)
	t.AddRule(`\*[^*]+\*`, highlight.StyleMarkup)
	t.AddRule(`~~[^~]+~~`, highlight.StyleMarkup)
	t.AddRule(`^>\s+.*$`, highlight.StyleMarkup)
	t.AddRule(`^\s*[-*+]\s+`, highlight.StyleOperator)
	t.AddRule(`^\s*\d+\.\s+`, highlight.StyleOperator)
	t.AddRule(`\[[^\]]+\]\([^)]+\)`, highlight.StyleMarkup)

	return t
}

// YAML returns a tokenizer for YAML documents.
func YAML() *Tokenizer {
	t := New("yaml", []string{".yml", ".yaml"})

	t.AddRule(`#.*$`, highlight.StyleComment)
	t.AddSubmatchRule(`^\s*(-\s+)?([A-Za-z_][-A-Za-z0-9_.]*)\s*:`, 2, highlight.StyleAttribute)
	t.AddRule(`"(?:[^"\\]|\\.)*"`, highlight.StyleString)
	t.AddRule(`'[^']*'`, highlight.StyleStringAlt)
	t.AddRule(`\b\d+\.?\d*\b`, highlight.StyleNumber)

	t.AddKeywords(highlight.StyleBuiltin, "true", "false", "null", "yes", "no")

	return t
}

// RegisterBuiltins adds every built-in simple grammar to the registry.
func RegisterBuiltins(r *highlight.Registry) {
	r.Register(Go())
	r.Register(Python())
	r.Register(JSON())
	r.Register(XML())
	r.Register(Markdown())
	r.Register(YAML())
}
