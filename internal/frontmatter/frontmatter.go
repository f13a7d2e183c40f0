package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Header holds the page frontmatter keys the site layer cares about.
// Unknown keys are ignored.
type Header struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	SidebarLabel string   `yaml:"sidebar_label"`
	Slug         string   `yaml:"slug"`
	Draft        bool     `yaml:"draft"`
	Tags         []string `yaml:"tags"`
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter line, had is false and body
// is the full input. Both LF and CRLF line endings are recognised.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len("---")
			return content[start:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes its frontmatter into a Header.
// Documents without frontmatter yield a zero Header.
func Parse(content []byte) (Header, []byte, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return Header{}, nil, err
	}
	var h Header
	if !had || len(bytes.TrimSpace(fm)) == 0 {
		return h, body, nil
	}
	if err := yaml.Unmarshal(fm, &h); err != nil {
		return Header{}, nil, fmt.Errorf("decode frontmatter: %w", err)
	}
	return h, body, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
