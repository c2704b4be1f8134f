package compose

import "regexp"

// Run is a maximal span of text sharing one formatting state.
type Run struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	URL    string `json:"url,omitempty"`
}

// inlineRe matches the inline markup grammar in precedence order:
// [text](url) links, then ***both*** / **bold** / *italic*, then bare
// URLs. Alternation order encodes the precedence; matching is a single
// non-overlapping pass, so spans never nest.
//
// Submatch groups: 1,2 link text/url; 3 bold+italic; 4 bold; 5 italic;
// 6 bare URL.
var inlineRe = regexp.MustCompile(
	`\[([^\]]+)\]\((https?://[^)]+)\)` +
		`|\*\*\*(.*?)\*\*\*` +
		`|\*\*(.*?)\*\*` +
		`|\*(.*?)\*` +
		`|(https?://\S+)`,
)

// ParseInline tokenizes text into styled runs. The concatenation of the
// returned runs' Text always equals the input exactly — plain runs fill
// the gaps between matches. Empty input yields a single empty run so
// downstream length arithmetic never sees an empty slice.
func ParseInline(text string) []Run {
	var runs []Run
	last := 0
	for _, m := range inlineRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			runs = append(runs, Run{Text: text[last:m[0]]})
		}
		switch {
		case m[2] >= 0: // [text](url)
			runs = append(runs, Run{Text: text[m[2]:m[3]], URL: text[m[4]:m[5]]})
		case m[6] >= 0: // ***both***
			runs = append(runs, Run{Text: text[m[6]:m[7]], Bold: true, Italic: true})
		case m[8] >= 0: // **bold**
			runs = append(runs, Run{Text: text[m[8]:m[9]], Bold: true})
		case m[10] >= 0: // *italic*
			runs = append(runs, Run{Text: text[m[10]:m[11]], Italic: true})
		case m[12] >= 0: // bare URL
			url := text[m[12]:m[13]]
			runs = append(runs, Run{Text: url, URL: url})
		}
		last = m[1]
	}
	if last < len(text) {
		runs = append(runs, Run{Text: text[last:]})
	}
	if len(runs) == 0 {
		runs = []Run{{Text: text}}
	}
	return runs
}

// runsLength sums the text lengths of a run sequence.
func runsLength(runs []Run) int64 {
	var n int64
	for _, r := range runs {
		n += int64(len(r.Text))
	}
	return n
}

// runsText concatenates the text of a run sequence.
func runsText(runs []Run) string {
	var b []byte
	for _, r := range runs {
		b = append(b, r.Text...)
	}
	return string(b)
}
