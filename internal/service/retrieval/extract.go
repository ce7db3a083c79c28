package retrieval

import (
	"strings"
	"unicode/utf8"
)

const (
	CategoryBudget = 3000
	FallbackBudget = 2000

	windowBefore = 300
	windowAfter  = 1200
	minExcerpt   = 50

	paragraphBreak = "\n\n"
	chapterLine    = "\nchapter"
	issueHeading   = "issue:"
	joinSeparator  = "\n\n"
)

type Branch int

const (
	BranchDefault Branch = iota
	BranchCategory
	BranchIssue
	BranchTroubleshooting
)

func (b Branch) String() string {
	switch b {
	case BranchCategory:
		return "category"
	case BranchIssue:
		return "issue"
	case BranchTroubleshooting:
		return "troubleshooting"
	default:
		return "default"
	}
}

type Excerpt struct {
	Text   string
	Branch Branch
}

// Extract picks the part of manual most likely relevant to utterance.
// The result is never longer than CategoryBudget bytes and is non-empty
// whenever manual is.
func Extract(utterance, manual string) Excerpt {
	if manual == "" {
		return Excerpt{Branch: BranchDefault}
	}

	query := asciiLower(utterance)
	// same byte offsets as manual
	text := asciiLower(manual)

	excerpt, matched := matchCategories(query, manual, text)
	if excerpt != "" {
		return Excerpt{Text: excerpt, Branch: BranchCategory}
	}

	// issue headings are only consulted for topical or problem queries
	if matched || containsAny(query, problemIndicators) {
		if excerpt := matchIssue(query, manual, text); excerpt != "" {
			return Excerpt{Text: excerpt, Branch: BranchIssue}
		}
	}
	if excerpt := matchTroubleshooting(query, manual, text); excerpt != "" {
		return Excerpt{Text: excerpt, Branch: BranchTroubleshooting}
	}
	return Excerpt{Text: truncate(manual, FallbackBudget), Branch: BranchDefault}
}

// matchCategories also reports whether any trigger term occurred in query,
// even when no excerpt survived.
func matchCategories(query, manual, text string) (string, bool) {
	var (
		parts   []string
		seen    = make(map[string]struct{})
		matched bool
	)

	for _, c := range categories {
		for _, term := range c.terms {
			if !strings.Contains(query, term) {
				continue
			}
			matched = true
			for offset := 0; offset < len(text); {
				idx := strings.Index(text[offset:], term)
				if idx < 0 {
					break
				}
				p := offset + idx
				offset = p + len(term)

				start, end := window(text, p, len(term))
				part := strings.TrimSpace(manual[start:end])
				if len(part) < minExcerpt {
					continue
				}
				if _, dup := seen[part]; dup {
					continue
				}
				seen[part] = struct{}{}
				parts = append(parts, part)
			}
		}
	}

	if len(parts) == 0 {
		return "", matched
	}
	return truncate(strings.Join(parts, joinSeparator), CategoryBudget), matched
}

// matchIssue finds an "Issue: <title>" heading whose title appears in query
// and returns it up to the next issue heading or chapter line.
func matchIssue(query, manual, text string) string {
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], issueHeading)
		if i < 0 {
			return ""
		}
		p := offset + i
		offset = p + len(issueHeading)

		lineEnd := len(text)
		if j := strings.IndexByte(text[offset:], '\n'); j >= 0 {
			lineEnd = offset + j
		}
		title := strings.Trim(text[offset:lineEnd], " \t\r.:-")
		if title == "" || !strings.Contains(query, title) {
			continue
		}

		end := len(text)
		if j := strings.Index(text[offset:], issueHeading); j >= 0 {
			end = offset + j
		}
		if j := strings.Index(text[offset:end], chapterLine); j >= 0 {
			end = offset + j
		}
		return strings.TrimSpace(truncate(manual[p:end], FallbackBudget))
	}
	return ""
}

// window returns [start, end) around a match at p, clipped to
// [p-windowBefore, p+windowAfter) and narrowed to paragraph breaks and to
// the next chapter heading.
func window(text string, p, termLen int) (int, int) {
	start := max(0, p-windowBefore)
	end := min(len(text), p+windowAfter)

	if i := strings.LastIndex(text[start:p], paragraphBreak); i >= 0 {
		start += i + len(paragraphBreak)
	}

	from := min(p+termLen, end)
	if i := strings.Index(text[from:end], paragraphBreak); i >= 0 {
		end = from + i
	}
	if i := strings.Index(text[from:end], chapterLine); i >= 0 {
		end = from + i
	}
	return start, end
}

func matchTroubleshooting(query, manual, text string) string {
	if !containsAny(query, problemIndicators) {
		return ""
	}

	pos, markerLen := -1, 0
	for _, m := range troubleshootingMarkers {
		if i := strings.Index(text, m); i >= 0 {
			pos, markerLen = i, len(m)
			break
		}
	}
	if pos < 0 {
		return ""
	}

	end := -1
	from := pos + markerLen
	for _, m := range sectionMarkers {
		if i := strings.Index(text[from:], m); i >= 0 {
			end = from + i
			break
		}
	}
	if end < 0 {
		end = min(len(text), pos+FallbackBudget)
	}

	return strings.TrimSpace(truncate(manual[pos:end], FallbackBudget))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// asciiLower lowercases A-Z only, so offsets into the result are valid
// offsets into s.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		cut = n
	}
	return s[:cut]
}
