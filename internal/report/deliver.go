package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// FileName builds the report file name: График_<label with non-digits
// replaced by _>.<ext> for a dated report, График_работы_<DD_MM_YYYY>.<ext>
// otherwise.
func FileName(dateLabel string, now time.Time, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if dateLabel != "" {
		return "График_" + nonDigits.ReplaceAllString(dateLabel, "_") + "." + ext
	}
	return "График_работы_" + strftime.Format("%d_%m_%Y", now) + "." + ext
}

// Save writes content to dir/name through a temp file and rename, so a
// reader never sees a half-written report. It returns the written path.
func Save(dir, name, content string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, ".grafik-report-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// Print pipes content into the print command argv, e.g. ["lp"]
func Print(ctx context.Context, argv []string, content string) error {
	if len(argv) == 0 {
		return errors.New("no print command configured")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(content)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("print command %s failed: %w: %s", argv[0], err, msg)
		}
		return fmt.Errorf("print command %s failed: %w", argv[0], err)
	}
	return nil
}
