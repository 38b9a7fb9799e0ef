// Package sanitize обезвреживает свободный текст перед сохранением:
// сначала структурно вырезает активное содержимое, затем экранирует HTML-символы.
package sanitize

import (
	"regexp"
	"strings"
)

// Stage — одна чистая трансформация строки.
type Stage func(string) string

// Pipeline — упорядоченный список стадий. Порядок значим.
type Pipeline []Stage

// Apply прогоняет значение через все стадии по порядку.
func (p Pipeline) Apply(s string) string {
	for _, stage := range p {
		s = stage(s)
	}
	return s
}

// Note — пайплайн для поля note: strip, затем encode.
var Note = Pipeline{StripActiveContent, EncodeEntities}

// Text применяет пайплайн Note.
func Text(s string) string {
	return Note.Apply(s)
}

var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	// обработчик считается атрибутом только внутри открытого тега: <tag ... onX=...
	eventHandlerRe = regexp.MustCompile(`(?i)(<[^>]*?\s)on[a-z]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]*)`)
	jsSchemeRe     = regexp.MustCompile(`(?i)javascript\s*:`)
)

// StripActiveContent удаляет блоки <script>...</script>, inline-обработчики событий в тегах (onclick=...)
// и схему javascript:. Повторяется до неподвижной точки, чтобы удаление не склеивало новые конструкции.
func StripActiveContent(s string) string {
	for {
		out := scriptBlockRe.ReplaceAllString(s, "")
		out = eventHandlerRe.ReplaceAllString(out, "${1}")
		out = jsSchemeRe.ReplaceAllString(out, "")
		if out == s {
			return out
		}
		s = out
	}
}

var entities = []string{"&amp;", "&lt;", "&gt;", "&quot;", "&#x27;"}

// EncodeEntities экранирует & < > " ' в именованные сущности.
// Уже закодированные сущности из этого набора не трогает, поэтому повторный вызов ничего не меняет.
func EncodeEntities(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			if ent := entityAt(s[i:]); ent != "" {
				b.WriteString(ent)
				i += len(ent) - 1
				continue
			}
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#x27;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func entityAt(s string) string {
	for _, ent := range entities {
		if strings.HasPrefix(s, ent) {
			return ent
		}
	}
	return ""
}
