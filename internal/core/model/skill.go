package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillFileName is the manifest file that identifies a skill directory.
const SkillFileName = "SKILL.md"

// LoadSkill reads the SKILL.md inside dir and builds a Skill record.
// When the frontmatter has no name, a display name is derived from the
// folder name. dir must be absolute.
func LoadSkill(dir string) (*Skill, error) {
	fm, err := ParseFrontmatter(filepath.Join(dir, SkillFileName))
	if err != nil {
		return nil, err
	}

	name := fm["name"]
	if name == "" {
		name = HumanizeName(filepath.Base(dir))
	}

	return &Skill{
		Name:        name,
		Description: fm["description"],
		SourcePath:  dir,
		Frontmatter: fm,
	}, nil
}

// ParseFrontmatter reads the leading YAML frontmatter block of a SKILL.md
// file (delimited by "---" lines) and flattens it into a string map.
// Nested maps are flattened with dotted keys, so `metadata: {author: x}`
// becomes "metadata.author". A file without a frontmatter block is a valid
// plain-markdown manifest and yields an empty map; only a block that is
// present but malformed is an error.
func ParseFrontmatter(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	content := strings.TrimPrefix(string(data), "\ufeff")
	content = strings.TrimLeft(content, "\r\n\t ")
	if !strings.HasPrefix(content, "---") {
		return map[string]string{}, nil
	}

	rest := content[3:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, fmt.Errorf("unterminated frontmatter in %s", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(rest[:end]), &raw); err != nil {
		return nil, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
	}

	fm := make(map[string]string, len(raw))
	flattenInto(fm, "", raw)
	return fm, nil
}

// SkillBody returns the markdown body of a SKILL.md file with the
// frontmatter block stripped. Used for previews; the body is never parsed.
func SkillBody(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content := string(data)
	if strings.HasPrefix(content, "---") {
		if end := strings.Index(content[3:], "\n---"); end >= 0 {
			body := content[3+end+4:]
			if i := strings.Index(body, "\n"); i >= 0 {
				body = body[i+1:]
			}
			return strings.TrimLeft(body, "\r\n"), nil
		}
	}
	return content, nil
}

func flattenInto(dst map[string]string, prefix string, src map[string]any) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flattenInto(dst, key, val)
		case nil:
			dst[key] = ""
		default:
			dst[key] = fmt.Sprintf("%v", val)
		}
	}
}

// HumanizeName turns a folder name into a display name: hyphens and
// underscores become spaces and each word is title-cased.
func HumanizeName(folder string) string {
	words := strings.FieldsFunc(folder, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
