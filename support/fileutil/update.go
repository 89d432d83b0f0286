package fileutil

import (
	"bytes"
	"os"
)

func UpdateFile(path string, updateFunc func(content []byte) (bool, []byte, error)) error {
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		if !os.IsNotExist(readErr) {
			return readErr
		}
	}
	ok, updated, err := updateFunc(content)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	return os.WriteFile(path, updated, 0644)
}

// WriteIfChanged writes content to path unless the file already
// holds exactly content. It reports whether a write happened.
func WriteIfChanged(path string, content []byte) (bool, error) {
	var written bool
	err := UpdateFile(path, func(old []byte) (bool, []byte, error) {
		if old != nil && bytes.Equal(old, content) {
			return false, nil, nil
		}
		written = true
		return true, content, nil
	})
	if err != nil {
		return false, err
	}
	return written, nil
}
