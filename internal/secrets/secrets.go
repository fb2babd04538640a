// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads operator credentials from a directory of plain-text
// files. Each file is one secret: the filename is the key and the trimmed
// contents are the value. Environment variables override files.
//
// Known keys: wikimedia-contact (appended to the User-Agent sent to the
// encyclopedia API, as the Wikimedia user-agent policy asks).
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ContactKey names the secret holding the operator's contact address.
const ContactKey = "wikimedia-contact"

// EnvPrefix is prepended to the upper-cased key when looking up overrides,
// so wikimedia-contact is read from WIKI_WATCH_WIKIMEDIA_CONTACT.
const EnvPrefix = "WIKI_WATCH_"

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads all regular, non-hidden files in dir. A missing directory is
// not an error and yields an empty set. Unreadable files are logged and
// skipped.
func Load(dir string, logger *slog.Logger) (Secrets, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable secret", "key", name, "error", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Get returns the value for key, preferring a non-empty environment
// override.
func (s Secrets) Get(key string) string {
	if v := strings.TrimSpace(os.Getenv(envName(key))); v != "" {
		return v
	}
	return s[key]
}

// Keys returns the loaded key names in no particular order.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

func envName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))
}
