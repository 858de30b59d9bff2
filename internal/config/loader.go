// MIT License
//
// Copyright (c) 2023 kache.io
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Loader reads the YAML configuration from disk. Unknown fields are
// rejected so a typo in the file surfaces as an error instead of
// silently falling back to defaults.
type Loader struct {
	path string

	config     atomic.Pointer[Configuration]
	configHash []byte
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	ldr := &Loader{path: path}
	if _, err := ldr.Load(); err != nil {
		return nil, err
	}
	return ldr, nil
}

// Load reads and decodes the config file, reporting whether its content
// changed since the last successful load.
func (l *Loader) Load() (bool, error) {
	buf, err := os.ReadFile(l.path)
	if err != nil {
		return false, err
	}

	sum := md5.Sum(buf)
	hash := sum[:]
	if bytes.Equal(l.configHash, hash) {
		return false, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)

	cfg := &Configuration{}
	if err := dec.Decode(cfg); err != nil {
		return false, err
	}

	l.configHash = hash
	l.config.Store(cfg)

	return true, nil
}

// Config returns the most recently loaded configuration.
func (l *Loader) Config() *Configuration {
	return l.config.Load()
}

// Checksum returns the hex-encoded checksum of the currently loaded file.
func (l *Loader) Checksum() string {
	return hex.EncodeToString(l.configHash)
}
