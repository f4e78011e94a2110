/*
 Configuration file parser

 Copyright 2026, ironic-sub000 contributors

 Permission is hereby granted, free of charge, to any person obtaining a copy
 of this software and associated documentation files (the "Software"), to deal
 in the Software without restriction, including without limitation the rights
 to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 copies of the Software, and to permit persons to whom the Software is
 furnished to do so, subject to the following conditions:

 The above copyright notice and this permission notice shall be included in
 all copies or substantial portions of the Software.

 THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 SOFTWARE.

*/

// Package configparser reads the emulator's configuration file: one
// "key = value" pair per line, '#' starts a comment, blank lines ignored.
// This is a deliberate simplification of a line-oriented config grammar
// (a line-oriented "<model> <address> <options>" format for attaching I/O
// devices) down to the flat set of knobs this core actually needs: memory
// backing file paths, boot options, and the hot-patch target table.
package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config holds every recognized key, either present with its string value
// or absent. Unknown keys are an error rather than silently ignored, so a
// typo in a config file surfaces immediately.
type Config struct {
	values map[string]string
}

var knownKeys = map[string]bool{
	"rom": true,
	"mem1-size": true,
	"mem2-size": true,
	"trace": true,
	"max-steps": true,
	"hot-patch": true,
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &Config{values: map[string]string{}}
	reader := bufio.NewReader(file)
	lineNumber := 0
	for {
		raw, err := reader.ReadString('\n')
		lineNumber++
		if len(raw) > 0 {
			if parseErr := cfg.parseLine(raw, lineNumber); parseErr != nil {
				return nil, parseErr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}
	return cfg, nil
}

func (cfg *Config) parseLine(raw string, lineNumber int) error {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("configparser: line %d: missing '=' in %q", lineNumber, line)
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if !knownKeys[key] {
		return fmt.Errorf("configparser: line %d: unknown key %q", lineNumber, key)
	}
	cfg.values[key] = value
	return nil
}

// String returns the string value of key, or def if it was not set.
func (cfg *Config) String(key, def string) string {
	if v, ok := cfg.values[key]; ok {
		return v
	}
	return def
}

// Uint64 returns the value of key parsed as an unsigned integer (decimal or
// 0x-prefixed hex), or def if it was not set.
func (cfg *Config) Uint64(key string, def uint64) (uint64, error) {
	v, ok := cfg.values[key]
	if !ok {
		return def, nil
	}
	return strconv.ParseUint(v, 0, 64)
}

// Uint32List returns the value of key split on commas and parsed as
// unsigned 32-bit integers (decimal or 0x-prefixed hex), used for the
// hot-patch target table. An unset key returns an empty list.
func (cfg *Config) Uint32List(key string) ([]uint32, error) {
	v, ok := cfg.values[key]
	if !ok || v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ",")
	out := make([]uint32, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 0, 32)
		if err != nil {
			return nil, fmt.Errorf("configparser: key %q: %w", key, err)
		}
		out = append(out, uint32(n))
	}
	return out, nil
}
