// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials and contact details from a directory of
// plain-text files. Each file in the directory is one secret: the filename is
// the key and the trimmed file contents are the value.
//
// Known keys are validated when loaded; a value that fails validation is
// reported and left out so the caller falls back to its other sources.
package secrets

import (
	"fmt"
	"io"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
)

// MailtoKey holds the contact address sent to the DOI registry for access
// to its polite pool.
const MailtoKey = "registry-mailto"

// validators check the values of known keys.
var validators = map[string]func(string) error{
	MailtoKey: validateMailto,
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map. Unreadable
// files and invalid values produce a warning on log but do not abort. A nil
// log discards warnings.
func Load(dir string, log io.Writer) (map[string]string, error) {
	if log == nil {
		log = io.Discard
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		value, err := readValue(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(log, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value == "" {
			continue
		}
		if validate, ok := validators[name]; ok {
			if err := validate(value); err != nil {
				fmt.Fprintf(log, "warning: ignoring secret %s: %v\n", name, err)
				continue
			}
		}
		secrets[name] = value
	}
	return secrets, nil
}

func readValue(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// validateMailto accepts a bare address such as "librarian@example.org".
// Display names are rejected because the value is embedded in a User-Agent.
func validateMailto(v string) error {
	addr, err := mail.ParseAddress(v)
	if err != nil {
		return fmt.Errorf("not an email address: %w", err)
	}
	if addr.Name != "" || addr.Address != v {
		return fmt.Errorf("want a bare address, got %q", v)
	}
	return nil
}

// Lookup returns the value for key, preferring an explicit value when one is set.
func Lookup(secrets map[string]string, key, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return secrets[key]
}
