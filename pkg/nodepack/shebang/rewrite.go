package shebang

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charlievieth/fastwalk"
	"github.com/google/uuid"

	"github.com/kegworks/nodepack/pkg/nodepack/logging"
)

// Rewrite patches the interpreter line of the file at path according to
// rule, reporting whether the file was changed. Only the first
// rule.MaxLength bytes of the first line are consulted when deciding
// whether the rule applies, so non-matching files are never read in full;
// content after the matched token is preserved. The file is replaced
// atomically and keeps its mode.
func Rewrite(path string, rule RewriteRule) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}

	head, err := readHead(path, rule.MaxLength+1)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	line, _, _ := strings.Cut(string(head), "\n")
	if len(line) > rule.MaxLength {
		line = line[:rule.MaxLength]
	}
	if !rule.Pattern.MatchString(line) {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	firstLine, rest, hasRest := strings.Cut(string(data), "\n")

	newFirst := rule.Pattern.ReplaceAllString(firstLine, rule.Replacement)
	content := newFirst
	if hasRest {
		content += "\n" + rest
	}

	tmpPath := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmpPath, []byte(content), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return false, fmt.Errorf("replacing %s: %w", path, err)
	}

	return true, nil
}

// readHead returns at most n bytes from the start of the file at path.
func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, n)
	read, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return head[:read], nil
}

// RewriteTree applies rule to every executable regular file under root and
// returns how many files were rewritten. Symlinks are left alone so a
// linked script is only ever patched through its real path.
func RewriteTree(root string, rule RewriteRule) (int, error) {
	logger := logging.Get("shebang")

	rewritten := 0
	conf := fastwalk.Config{
		Follow: false,
	}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
			return nil
		}

		changed, err := Rewrite(path, rule)
		if err != nil {
			return err
		}
		if changed {
			logger.Debug("rewrote shebang", "path", path)
			rewritten++
		}
		return nil
	})
	if err != nil {
		return rewritten, fmt.Errorf("walking %s: %w", root, err)
	}

	return rewritten, nil
}
