package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/jaundice-service/internal/repository"
)

// FileSource reads charged words from plain text dictionaries, one word per
// line. Blank lines and lines starting with '#' are skipped.
type FileSource struct {
	paths []string
}

// NewFileSource accepts files and directories. Directories contribute every
// *.txt file they contain, in name order.
func NewFileSource(paths ...string) *FileSource {
	return &FileSource{paths: paths}
}

var _ repository.ChargedWordSource = (*FileSource)(nil)

// LoadWords implements repository.ChargedWordSource.
func (s *FileSource) LoadWords(ctx context.Context) ([]string, error) {
	files, err := s.resolveFiles()
	if err != nil {
		return nil, err
	}

	var words []string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileWords, err := readWords(file)
		if err != nil {
			return nil, err
		}
		words = append(words, fileWords...)
	}
	return words, nil
}

func (s *FileSource) resolveFiles() ([]string, error) {
	var files []string
	for _, path := range s.paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("charged words path %q: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		var dirFiles []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".txt") {
				dirFiles = append(dirFiles, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk charged words dir %q: %w", path, err)
		}
		sort.Strings(dirFiles)
		files = append(files, dirFiles...)
	}
	return files, nil
}

func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open charged words file: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return words, nil
}
