package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

var (
	mu     sync.RWMutex
	bundle *goi18n.Bundle
)

// Init builds the bundle with the embedded English messages. Safe to call more than once.
func Init() error {
	b, err := newBundle()
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	bundle = b
	return nil
}

func newBundle() (*goi18n.Bundle, error) {
	return parseEmbedded(locales, "locales/active.en.json")
}

func parseEmbedded(fsys fs.FS, path string) (*goi18n.Bundle, error) {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if _, err := b.ParseMessageFileBytes(data, "active.en.json"); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return b, nil
}

// Load adds a message file from disk, e.g. active.id.json for Indonesian.
func Load(path string) error {
	mu.Lock()
	defer mu.Unlock()
	if bundle == nil {
		b, err := newBundle()
		if err != nil {
			return err
		}
		bundle = b
	}
	_, err := bundle.LoadMessageFile(path)
	return err
}

// Localize renders messageID for the first matching language tag. Falls back to English and
// finally to the message id itself.
func Localize(lang, messageID string, data map[string]any) string {
	mu.RLock()
	b := bundle
	mu.RUnlock()
	if b == nil {
		if err := Init(); err != nil {
			return messageID
		}
		mu.RLock()
		b = bundle
		mu.RUnlock()
	}

	loc := goi18n.NewLocalizer(b, lang, language.English.String())
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// T localizes in English.
func T(messageID string, data map[string]any) string {
	return Localize(language.English.String(), messageID, data)
}
