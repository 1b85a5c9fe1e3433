package shell

import "regexp"

// Static pattern tables for the shell grammar. Built once at init and
// shared read-only by every document.

// hereDocOpener matches a here-document opener at the start of the
// match position: <<DELIM, <<-DELIM, <<'DELIM' or <<"DELIM". The
// here-string operator <<< is excluded by the scanner before matching.
var hereDocOpener = regexp.MustCompile(`^<<-?\s*(?:'([A-Za-z_][A-Za-z0-9_]*)'|"([A-Za-z_][A-Za-z0-9_]*)"|([A-Za-z_][A-Za-z0-9_]*))`)

// variablePattern matches $NAME, ${NAME} and the special parameters.
var variablePattern = regexp.MustCompile(`^\$(?:\{[A-Za-z_][A-Za-z0-9_]*\}|[A-Za-z_][A-Za-z0-9_]*|[0-9@*#?$!-])`)

// numberPattern matches integer, hex and simple float literals.
var numberPattern = regexp.MustCompile(`^(?:0[xX][0-9a-fA-F]+|[0-9]+(?:\.[0-9]+)?)$`)

// keywords are the shell reserved words and flow-control builtins.
var keywords = map[string]struct{}{
	"if": {}, "then": {}, "else": {}, "elif": {}, "fi": {},
	"for": {}, "while": {}, "until": {}, "do": {}, "done": {},
	"case": {}, "esac": {}, "in": {}, "select": {}, "function": {},
	"time": {}, "coproc": {},
	"return": {}, "exit": {}, "break": {}, "continue": {},
	"local": {}, "export": {}, "declare": {}, "typeset": {},
	"readonly": {}, "unset": {}, "shift": {}, "trap": {},
	"eval": {}, "exec": {}, "set": {}, "source": {},
	"alias": {}, "unalias": {},
}

// builtins are common commands styled distinctly from keywords.
var builtins = map[string]struct{}{
	"echo": {}, "printf": {}, "read": {}, "cd": {}, "pwd": {},
	"test": {}, "let": {}, "kill": {}, "wait": {}, "type": {},
	"hash": {}, "ulimit": {}, "umask": {}, "getopts": {},
	"jobs": {}, "fg": {}, "bg": {}, "dirs": {}, "pushd": {}, "popd": {},
	"true": {}, "false": {},
}

// operatorChars are single-byte shell operators styled at top level.
var operatorChars = map[byte]struct{}{
	'|': {}, '&': {}, ';': {}, '<': {}, '>': {}, '=': {},
	'!': {}, '{': {}, '}': {},
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t'
}
