package highlight

import "regexp"

// urlPattern matches URL-like substrings inside string content. It is
// deliberately loose: highlighting in-progress text should light up a
// URL as soon as it looks like one.
var urlPattern = regexp.MustCompile(`(?:https?://|ftp://|www\.)[^\s'"<>()]+`)

// TagURLs re-tags URL-like substrings of [start, end) with the
// url-in-string class. It only touches bytes already styled as string
// content, so the outer string span boundaries are preserved and
// comments are never re-tagged.
func TagURLs(cb ClassBuffer, line string, start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(line) {
		end = len(line)
	}
	if start >= end {
		return
	}
	for _, m := range urlPattern.FindAllStringIndex(line[start:end], -1) {
		for i := start + m[0]; i < start+m[1]; i++ {
			if cb[i].IsString() {
				cb[i] = StyleURLInString
			}
		}
	}
}
