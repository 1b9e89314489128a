package util

import (
	"strings"
	"unicode"
)

// stopWords 标题中出现频率高但没有区分度的词
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "this": {}, "that": {},
	"are": {}, "was": {}, "how": {}, "what": {}, "why": {}, "you": {}, "your": {},
	"of": {}, "to": {}, "in": {}, "on": {}, "is": {}, "an": {}, "at": {}, "by": {},
	"我们": {}, "你们": {}, "他们": {}, "一个": {}, "这个": {}, "那个": {}, "什么": {},
	"如何": {}, "怎么": {}, "为什么": {}, "没有": {}, "可以": {}, "以及": {}, "关于": {},
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// ExtractKeywords 将标题切成关键词集合
// 规则: 转小写, 按字母数字串与 CJK 串切分, CJK 串再切成二元组, 丢弃单字符与停用词, 保持首次出现顺序
func ExtractKeywords(title string) []string {
	var (
		keywords []string
		seen     = make(map[string]struct{})
		current  []rune
		inCJK    bool
	)

	emit := func(word string) {
		if _, stop := stopWords[word]; stop {
			return
		}
		if _, ok := seen[word]; !ok {
			seen[word] = struct{}{}
			keywords = append(keywords, word)
		}
	}

	flush := func() {
		switch {
		case len(current) < 2:
		case inCJK:
			// 中文标题没有空格，整串几乎不会与其他标题相同
			for i := 0; i+1 < len(current); i++ {
				emit(string(current[i : i+2]))
			}
		default:
			emit(string(current))
		}
		current = current[:0]
	}

	for _, r := range strings.ToLower(title) {
		switch {
		case isCJK(r):
			if !inCJK {
				flush()
				inCJK = true
			}
			current = append(current, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if inCJK {
				flush()
				inCJK = false
			}
			current = append(current, r)
		default:
			flush()
			inCJK = false
		}
	}
	flush()

	return keywords
}

// SharedKeywords 两组关键词的交集大小
func SharedKeywords(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, w := range a {
		set[w] = struct{}{}
	}
	n := 0
	for _, w := range b {
		if _, ok := set[w]; ok {
			n++
		}
	}
	return n
}
