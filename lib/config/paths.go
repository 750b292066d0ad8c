package config

import (
	"path/filepath"
	"sync"

	yaml "github.com/goccy/go-yaml"
)

// CfgPath is a path that, when relative, is taken relative to the directory
// of the config file it was read from
type CfgPath string

var (
	unmarshalMu   sync.Mutex
	unmarshalBase string
)

// withBase sets the directory relative CfgPaths resolve against for the
// duration of fn
func withBase(dir string, fn func() error) error {
	unmarshalMu.Lock()
	defer unmarshalMu.Unlock()
	unmarshalBase = dir
	defer func() { unmarshalBase = "" }()
	return fn()
}

func (c *CfgPath) UnmarshalYAML(b []byte) error {
	var path string

	err := yaml.Unmarshal(b, &path)
	if err != nil {
		return err
	}

	if path == "" || filepath.IsAbs(path) {
		*c = CfgPath(path)
	} else {
		*c = CfgPath(filepath.Join(unmarshalBase, path))
	}
	return nil
}
