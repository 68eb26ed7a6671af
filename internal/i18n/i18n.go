// Package i18n translates the text the client shows to people.
//
// Messages are keyed by their English text, so English needs no catalog
// entries and a missing translation falls back to English.
package i18n

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/Veraticus/claimflow/internal/model"
)

// Interface languages.
var (
	English     = language.English
	Chinese     = language.MustParse("zh")
	SwissGerman = language.MustParse("de-CH")
	French      = language.French
)

// Supported lists the interface languages. The first one is the fallback.
var Supported = []language.Tag{English, Chinese, SwissGerman, French}

var (
	matcher = language.NewMatcher(Supported)
	builder = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(English))
	for key, t := range messages {
		for _, tr := range []struct {
			tag  language.Tag
			text string
		}{{Chinese, t.zh}, {SwissGerman, t.de}, {French, t.fr}} {
			if tr.text == "" {
				continue
			}
			if err := b.SetString(tr.tag, key, tr.text); err != nil {
				panic(fmt.Sprintf("i18n: invalid message %q for %s: %v", key, tr.tag, err))
			}
		}
	}
	return b
}

// EnvLocale returns the locale named by LC_ALL, LC_MESSAGES or LANG, in that
// order of precedence.
func EnvLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// normalize turns a POSIX locale such as "de_CH.UTF-8@euro" into a BCP 47 tag.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Parse resolves s to a supported language. It fails when s is not a language
// tag or names a language the client has no translation for.
func Parse(s string) (language.Tag, error) {
	norm := normalize(s)
	if norm == "" {
		return English, nil
	}
	t, err := language.Parse(norm)
	if err != nil {
		return English, fmt.Errorf("invalid language %q: %w", s, err)
	}
	_, i, conf := matcher.Match(t)
	if conf == language.No {
		return English, fmt.Errorf("unsupported language %q: want %s", s, supportedList())
	}
	return Supported[i], nil
}

// Match is like Parse but falls back to English instead of failing.
func Match(s string) language.Tag {
	t, err := Parse(s)
	if err != nil {
		return English
	}
	return t
}

func supportedList() string {
	names := make([]string, len(Supported))
	for i, t := range Supported {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// Printer renders catalog messages in one language. A nil *Printer prints
// English.
type Printer struct {
	p   *message.Printer
	tag language.Tag
}

// New creates a printer for tag.
func New(tag language.Tag) *Printer {
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(builder))}
}

var english = New(English)

func (p *Printer) printer() *message.Printer {
	if p == nil {
		return english.p
	}
	return p.p
}

// Tag returns the printer's language.
func (p *Printer) Tag() language.Tag {
	if p == nil {
		return English
	}
	return p.tag
}

// T formats the message keyed by key with args.
func (p *Printer) T(key message.Reference, args ...any) string {
	return p.printer().Sprintf(key, args...)
}

// Text translates s when it is a known message and returns it unchanged
// otherwise. It is meant for text that may come from outside the catalog,
// such as server error bodies, and never interprets format verbs in s.
func (p *Printer) Text(s string) string {
	if _, ok := messages[s]; !ok || strings.Contains(s, "%") {
		return s
	}
	return p.printer().Sprintf(s)
}

// Status returns the translated label of s.
func (p *Printer) Status(s model.ClaimStatus) string {
	return p.Text(s.Label())
}
