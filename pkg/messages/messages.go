package messages

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var localeFS embed.FS

// DefaultLanguage is the catalog used when negotiation fails.
const DefaultLanguage = "en"

var (
	ErrNoCatalogs      = errors.New("messages: no catalogs found")
	ErrFailedToParse   = errors.New("messages: failed to parse catalog")
	ErrInvalidLanguage = errors.New("messages: invalid language tag")
)

// Catalog holds the loaded translations and resolves languages to the
// closest embedded catalog. Safe for concurrent use after New.
type Catalog struct {
	texts   map[string]map[string]string
	matcher language.Matcher
	tags    []language.Tag
	langs   []string // parallel to tags

	mu    sync.RWMutex
	cache map[string]string // negotiated language per requested tag
}

// New loads every embedded catalog.
func New() (*Catalog, error) {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, errors.Join(ErrNoCatalogs, err)
	}

	c := &Catalog{
		texts: make(map[string]map[string]string, len(entries)),
		cache: make(map[string]string),
	}

	for _, entry := range entries {
		name := entry.Name()
		lang := strings.TrimSuffix(name, path.Ext(name))

		raw, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, errors.Join(ErrFailedToParse, err)
		}
		texts := make(map[string]string)
		if err := yaml.Unmarshal(raw, &texts); err != nil {
			return nil, errors.Join(ErrFailedToParse, fmt.Errorf("catalog %s: %w", name, err))
		}

		tag, err := language.Parse(lang)
		if err != nil {
			return nil, errors.Join(ErrInvalidLanguage, fmt.Errorf("catalog %s: %w", name, err))
		}

		c.texts[lang] = texts
		if lang == DefaultLanguage {
			// The matcher prefers its first tag on a miss.
			c.tags = append([]language.Tag{tag}, c.tags...)
			c.langs = append([]string{lang}, c.langs...)
		} else {
			c.tags = append(c.tags, tag)
			c.langs = append(c.langs, lang)
		}
	}

	if len(c.texts) == 0 {
		return nil, ErrNoCatalogs
	}
	if _, ok := c.texts[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("%w: missing default language %q", ErrNoCatalogs, DefaultLanguage)
	}

	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Languages returns the language codes of the embedded catalogs.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.langs))
	copy(out, c.langs)
	return out
}

// Keys returns every key present in the given catalog.
func (c *Catalog) Keys(lang string) []string {
	texts, ok := c.texts[lang]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(texts))
	for k := range texts {
		keys = append(keys, k)
	}
	return keys
}

// Get returns the text of key in the catalog closest to lang. A missing
// key falls back to the default language, then to the key itself.
func (c *Catalog) Get(lang, key string) string {
	resolved := c.resolve(lang)
	if text, ok := c.texts[resolved][key]; ok {
		return text
	}
	if text, ok := c.texts[DefaultLanguage][key]; ok {
		return text
	}
	return key
}

// Getf localizes key and applies fmt args to the result.
func (c *Catalog) Getf(lang, key string, args ...any) string {
	text := c.Get(lang, key)
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// resolve negotiates a requested language tag against the embedded
// catalogs, caching the outcome per distinct input.
func (c *Catalog) resolve(lang string) string {
	if _, ok := c.texts[lang]; ok {
		return lang
	}

	c.mu.RLock()
	cached, ok := c.cache[lang]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	resolved := DefaultLanguage
	if tag, err := language.Parse(lang); err == nil {
		_, idx, _ := c.matcher.Match(tag)
		if idx >= 0 && idx < len(c.langs) {
			resolved = c.langs[idx]
		}
	}

	c.mu.Lock()
	c.cache[lang] = resolved
	c.mu.Unlock()
	return resolved
}
