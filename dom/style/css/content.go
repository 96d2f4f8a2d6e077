package css

import (
	"fmt"
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
	parse "github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
)

// ContentKind is the type of a single item of CSS property 'content'.
type ContentKind uint8

// Kinds of content items.
const (
	ContentString ContentKind = iota
	ContentAttr
	ContentCounter
	ContentCounters
	ContentOpenQuote
	ContentCloseQuote
	ContentNoOpenQuote
	ContentNoCloseQuote
	ContentURL
)

var contentKindNames = [...]string{"string", "attr", "counter", "counters",
	"open-quote", "close-quote", "no-open-quote", "no-close-quote", "url"}

func (ck ContentKind) String() string {
	return contentKindNames[ck]
}

// ContentItem is a single item of CSS property 'content'.
//
// Value holds the literal text for strings, the attribute name for attr(),
// the counter name for counter() and counters(), and the URL for url().
type ContentItem struct {
	Kind      ContentKind
	Value     string
	Separator string // counters() only
	Style     string // list style type for counter() and counters()
}

func (ci ContentItem) String() string {
	return fmt.Sprintf("%s(%q)", ci.Kind, ci.Value)
}

// ParseContent parses the value of CSS property 'content'. Values 'normal'
// and 'none' yield an empty list.
func ParseContent(p style.Property) ([]ContentItem, error) {
	s := strings.TrimSpace(p.String())
	switch strings.ToLower(s) {
	case "", "normal", "none":
		return nil, nil
	}
	var items []ContentItem
	l := tcss.NewLexer(parse.NewInputString(s))
	for {
		tt, data := l.Next()
		switch tt {
		case tcss.ErrorToken:
			if err := l.Err(); err != nil && err.Error() != "EOF" {
				return items, fmt.Errorf("content: %w", err)
			}
			return items, nil
		case tcss.WhitespaceToken, tcss.CommentToken:
		case tcss.StringToken:
			items = append(items, ContentItem{Kind: ContentString, Value: unquote(string(data))})
		case tcss.URLToken:
			u, _ := parseURL(string(data))
			items = append(items, ContentItem{Kind: ContentURL, Value: u})
		case tcss.IdentToken:
			switch strings.ToLower(string(data)) {
			case "open-quote":
				items = append(items, ContentItem{Kind: ContentOpenQuote})
			case "close-quote":
				items = append(items, ContentItem{Kind: ContentCloseQuote})
			case "no-open-quote":
				items = append(items, ContentItem{Kind: ContentNoOpenQuote})
			case "no-close-quote":
				items = append(items, ContentItem{Kind: ContentNoCloseQuote})
			default:
				return items, fmt.Errorf("content: unexpected identifier %q", data)
			}
		case tcss.FunctionToken:
			name := strings.ToLower(strings.TrimSuffix(string(data), "("))
			args := functionArgs(l)
			item, err := contentFunction(name, args)
			if err != nil {
				return items, err
			}
			items = append(items, item)
		default:
			return items, fmt.Errorf("content: unexpected token %s %q", tt, data)
		}
	}
}

func contentFunction(name string, args []string) (ContentItem, error) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}
	switch name {
	case "attr":
		if len(args) == 0 {
			return ContentItem{}, fmt.Errorf("content: attr() without attribute name")
		}
		return ContentItem{Kind: ContentAttr, Value: arg(0)}, nil
	case "counter":
		return ContentItem{Kind: ContentCounter, Value: arg(0), Style: arg(1)}, nil
	case "counters":
		return ContentItem{Kind: ContentCounters, Value: arg(0), Separator: arg(1), Style: arg(2)}, nil
	case "url":
		return ContentItem{Kind: ContentURL, Value: arg(0)}, nil
	}
	return ContentItem{}, fmt.Errorf("content: unsupported function %s()", name)
}

// functionArgs collects comma-separated arguments up to the closing parenthesis.
func functionArgs(l *tcss.Lexer) []string {
	var args []string
	var current strings.Builder
	for {
		tt, data := l.Next()
		switch tt {
		case tcss.ErrorToken, tcss.RightParenthesisToken:
			if current.Len() > 0 {
				args = append(args, current.String())
			}
			return args
		case tcss.CommaToken:
			args = append(args, current.String())
			current.Reset()
		case tcss.WhitespaceToken:
		case tcss.StringToken:
			current.WriteString(unquote(string(data)))
		default:
			current.Write(data)
		}
	}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return strings.NewReplacer(`\"`, `"`, `\'`, `'`, `\A`, "\n", `\a`, "\n", `\\`, `\`).Replace(s)
}
