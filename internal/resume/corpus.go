// Package resume turns a resume text source and a skills configuration
// into the ordered corpus of searchable text units.
package resume

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrNotFound is returned when neither a resume source nor cached resume
// text is available. There is nothing to score against, so callers must
// treat it as fatal.
var ErrNotFound = errors.New("resume text not found")

// DocName keys the cached flattened bullet text in the document store.
const DocName = "resume_bullets"

const (
	minBulletLen = 20
	maxBulletLen = 300
)

// bulletGlyphs are leading markers stripped from resume lines before the
// length filter is applied.
var bulletGlyphs = []string{"•", "●", "▪", "◦", "‣", "–", "—", "-", "*", "·"}

// Source supplies the raw resume text.
type Source interface {
	Text() (string, error)
}

// Cache persists the flattened bullet text between runs.
type Cache interface {
	GetDocument(name string) (string, bool, error)
	PutDocument(name, content string) error
}

// SkillCategory is one ordered group of skills from the configuration.
type SkillCategory struct {
	Name  string   `mapstructure:"name"`
	Items []string `mapstructure:"items"`
}

// Builder produces the resume corpus: extracted experience bullets
// followed by one "Proficient in X" unit per configured skill.
type Builder struct {
	source Source
	cache  Cache
	skills []SkillCategory
	logger *zap.Logger
}

func NewBuilder(source Source, cache Cache, skills []SkillCategory, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{source: source, cache: cache, skills: skills, logger: logger}
}

// Build returns the ordered corpus units. Bullets extracted from a live
// source are written through to the cache; skill units are regenerated on
// every build since they depend on live configuration.
func (b *Builder) Build() ([]string, error) {
	bullets, err := b.bullets()
	if err != nil {
		return nil, err
	}

	units := make([]string, 0, len(bullets))
	units = append(units, bullets...)

	for _, category := range b.skills {
		for _, skill := range category.Items {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				continue
			}
			units = append(units, "Proficient in "+skill)
		}
	}

	b.logger.Debug("resume corpus built",
		zap.Int("bullets", len(bullets)),
		zap.Int("units", len(units)),
	)

	return units, nil
}

func (b *Builder) bullets() ([]string, error) {
	if b.source != nil {
		text, err := b.source.Text()
		if err == nil {
			bullets := ExtractBullets(text)
			b.cacheBullets(bullets)
			return bullets, nil
		}
		b.logger.Warn("resume source unavailable, falling back to cached text", zap.Error(err))
	}

	if b.cache != nil {
		cached, ok, err := b.cache.GetDocument(DocName)
		if err != nil {
			return nil, fmt.Errorf("reading cached resume text: %w", err)
		}
		if ok && strings.TrimSpace(cached) != "" {
			bullets := splitCached(cached)
			b.logger.Info("using cached resume text", zap.Int("bullets", len(bullets)))
			return bullets, nil
		}
	}

	return nil, ErrNotFound
}

func (b *Builder) cacheBullets(bullets []string) {
	if b.cache == nil || len(bullets) == 0 {
		return
	}
	if err := b.cache.PutDocument(DocName, strings.Join(bullets, "\n")); err != nil {
		b.logger.Warn("caching resume text failed", zap.Error(err))
	}
}

// ExtractBullets performs the line-based bullet extraction: strip leading
// bullet glyphs, keep lines whose length falls within the bullet bounds
// and that do not end in a colon. The trailing-colon check drops section
// headers like "Work Experience:".
func ExtractBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = StripBullet(line)
		if len(line) < minBulletLen || len(line) > maxBulletLen {
			continue
		}
		if strings.HasSuffix(line, ":") {
			continue
		}
		bullets = append(bullets, line)
	}
	return bullets
}

// StripBullet removes leading list markers, numbered prefixes like "1."
// or "2)", and surrounding whitespace.
func StripBullet(line string) string {
	line = strings.TrimSpace(line)
	for {
		stripped := line
		for _, glyph := range bulletGlyphs {
			stripped = strings.TrimPrefix(stripped, glyph)
		}
		stripped = stripNumberPrefix(stripped)
		stripped = strings.TrimSpace(stripped)
		if stripped == line {
			return line
		}
		line = stripped
	}
}

func stripNumberPrefix(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return line
	}
	if line[i] != '.' && line[i] != ')' {
		return line
	}
	// A marker is followed by a space; "3.5 years" is not a marker.
	if i+1 < len(line) && line[i+1] != ' ' {
		return line
	}
	return line[i+1:]
}

func splitCached(cached string) []string {
	var bullets []string
	for _, line := range strings.Split(cached, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}
