// Package metadata extracts article identifiers from tagger output
// filenames.
package metadata

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// ArticleNumber returns the numeric part of a PMC tagger filename such as
// "PMC_8812345.xml". The second return is false when the name does not
// follow that shape.
func ArticleNumber(filename string) (string, bool) {
	base := filepath.Base(filename)
	if !strings.HasPrefix(base, "PMC_") || !strings.HasSuffix(base, ".xml") {
		return "", false
	}
	num := strings.TrimSuffix(strings.TrimPrefix(base, "PMC_"), ".xml")
	if num == "" {
		return "", false
	}
	return num, true
}

// ListArticleNumbers walks dir and collects the article numbers of every
// PMC XML file found, in walk order.
func ListArticleNumbers(dir string) ([]string, error) {
	var numbers []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if num, ok := ArticleNumber(path); ok {
			numbers = append(numbers, num)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return numbers, nil
}
