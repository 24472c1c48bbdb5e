package dispatch

import "regexp"

// FindMatch returns the leftmost match of pattern in text, with its named groups.
func FindMatch(pattern *regexp.Regexp, text string) (Match, bool) {
	idx := pattern.FindStringSubmatchIndex(text)
	if idx == nil {
		return Match{}, false
	}
	m := Match{Text: text[idx[0]:idx[1]], Groups: map[string]string{}}
	for i, name := range pattern.SubexpNames() {
		if name == "" || idx[2*i] < 0 {
			continue
		}
		m.Groups[name] = text[idx[2*i]:idx[2*i+1]]
	}
	return m, true
}
