package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeNickname keeps ASCII letters, digits, '-' and '_' so the
// nickname can appear in a filename. An empty result falls back to
// "Keypair".
func SanitizeNickname(nickname string) string {
	var b strings.Builder
	for _, c := range nickname {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "Keypair"
	}
	return b.String()
}

// EncryptedFileName builds the standardized export filename. ext is
// "enc" or "pgp". The alarming prefix is intentional: these files must
// never leave the air-gapped machine.
func EncryptedFileName(nickname, ext string) string {
	return fmt.Sprintf("SECRET_KEEP_AIRGAPPED_%s_Private_Key.%s", SanitizeNickname(nickname), ext)
}

// DecryptedFileName derives the plaintext output name from the input
// file. A final .enc or .pgp extension is stripped (case-insensitive)
// before .json is appended.
func DecryptedFileName(inputPath string) string {
	name := filepath.Base(inputPath)
	lowered := strings.ToLower(name)
	if strings.HasSuffix(lowered, ".enc") || strings.HasSuffix(lowered, ".pgp") {
		name = name[:len(name)-4]
	}
	return fmt.Sprintf("CAREFUL_NOT_ENCRYPTED_%s.json", name)
}

// CreateUniquePath joins dir and fileName, appending " (1)", " (2)", ...
// before the extension until the path does not exist.
func CreateUniquePath(dir, fileName string) string {
	path := filepath.Join(dir, fileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(fileName)
	stem := strings.TrimSuffix(fileName, ext)
	for i := 1; i < 10000; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
	return filepath.Join(dir, fmt.Sprintf("%s (unique)%s", stem, ext))
}

// WriteFileExclusive writes data to path, failing if the file already
// exists. Pair with CreateUniquePath to avoid clobbering earlier output.
func WriteFileExclusive(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// ResolveOutputDir treats an existing directory path as the output
// directory; otherwise the path's parent is used. An empty path means
// the current directory.
func ResolveOutputDir(path string) string {
	if path == "" {
		return "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	if parent := filepath.Dir(path); parent != "" {
		return parent
	}
	return "."
}
