// ABOUTME: Frontmatter and file helpers for the markdown backend.
// ABOUTME: YAML frontmatter parsing and rendering, slugs, and atomic file replacement.
package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/adrg/frontmatter"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

const frontmatterFence = "---"

// yamlFrontmatter decodes headers with the same YAML library that renders them.
var yamlFrontmatter = &frontmatter.Format{
	Start:     frontmatterFence,
	End:       frontmatterFence,
	Unmarshal: yaml.Unmarshal,
}

// parseFrontmatter decodes the YAML header of data into fm and returns the
// body that follows it. Documents without a header fail with
// frontmatter.ErrNotFound.
func parseFrontmatter(data []byte, fm any) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	body, err := frontmatter.MustParse(bytes.NewReader(data), fm, yamlFrontmatter)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// renderFrontmatter encodes fm as YAML between fences followed by body.
func renderFrontmatter(fm any, body string) (string, error) {
	out, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(frontmatterFence + "\n")
	sb.Write(out)
	sb.WriteString(frontmatterFence + "\n")
	sb.WriteString(body)
	return sb.String(), nil
}

// atomicWrite replaces path so readers see either the old or the new file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// slugify lowercases s and collapses runs of anything but letters and
// digits into single hyphens.
func slugify(s string) string {
	var sb strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && sb.Len() > 0 {
			sb.WriteByte('-')
			hyphen = true
		}
	}
	slug := strings.TrimSuffix(sb.String(), "-")
	if slug == "" {
		return "habit"
	}
	return slug
}
