package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const defaultKeywordCount = 10

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all also am an and any are as at
		be because been before being below between both but by
		can cannot could did does doing down during each few for from further
		had has have having he her here hers herself him himself his how
		i if in into is it its itself just me more most my myself
		no nor not now of off on once only or other our ours ourselves out over own
		same she should so some such than that the their theirs them themselves then there
		these they this those through to too under until up very
		was we were what when where which while who whom why will with would
		you your yours yourself yourselves
		shall might must may also into onto upon using used use make makes made
		like just well much many every`) {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether w (lowercase) is in the fixed stop-word set.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// ExtractKeywords returns up to n of the most frequent meaningful words in an HTML body.
// Stop words and words of three characters or fewer are ignored. Words with equal counts keep
// the order in which they were first seen.
func ExtractKeywords(html string, n int) []string {
	if n <= 0 {
		n = defaultKeywordCount
	}
	text := strings.ToLower(PlainText(html))

	counts := map[string]int{}
	order := []string{}
	for _, w := range wordRe.FindAllString(text, -1) {
		if utf8.RuneCountInString(w) <= 3 || IsStopWord(w) {
			continue
		}
		if _, ok := counts[w]; !ok {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}
