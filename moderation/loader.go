package moderation

import (
	"bufio"
	"bytes"
	"io/fs"
	"strings"

	"groupchat/errors"
)

// WordList is the merged content of every per-language dictionary
// found in a directory, plus the language codes for logging.
type WordList struct {
	Words     []string
	Languages []string
}

// LoadWordList reads every .txt file directly under dir in fsys. Each
// file is one language dictionary ("en.txt" -> "en"), one word per
// line, blank lines ignored, duplicates across files merged.
func LoadWordList(fsys fs.FS, dir string) (*WordList, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	unique := make(map[string]struct{})
	var languages []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return nil, err
		}

		// A scanner copes with \n and \r\n line endings alike.
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(unique) == 0 {
		return nil, errors.ErrEmptyWords
	}

	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	return &WordList{Words: words, Languages: languages}, nil
}
