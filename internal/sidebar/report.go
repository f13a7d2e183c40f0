package sidebar

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
)

// WriteMarkdown renders sidebars as a Markdown outline, one section per
// sidebar in name order, followed by a summary table.
func WriteMarkdown(w io.Writer, sidebars map[string][]Node) error {
	md := markdown.NewMarkdown(w)
	md.H1("Sidebars")
	md.PlainText("")

	names := make([]string, 0, len(sidebars))
	for name := range sidebars {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		nodes := sidebars[name]
		md.H2(escapeText(name))
		md.PlainText("")
		st := Count(nodes)
		writeOutline(md, nodes, 0)
		md.PlainText("")
		rows = append(rows, []string{escapeText(name), strconv.Itoa(st.Docs), strconv.Itoa(st.Categories), strconv.Itoa(st.Links)})
	}

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Sidebar", "Docs", "Categories", "Links"},
		Rows:   rows,
	})
	return md.Build()
}

func writeOutline(md *markdown.Markdown, nodes []Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		md.PlainText(indent + "- " + outlineLabel(n))
		if n.Kind == KindCategory {
			writeOutline(md, n.Items, depth+1)
		}
	}
}

func outlineLabel(n Node) string {
	switch n.Kind {
	case KindDoc:
		if n.Label != "" {
			return escapeText(n.Label) + " (" + codeSpan(n.ContentID) + ")"
		}
		return codeSpan(n.ContentID)
	case KindLink:
		return markdown.Link(escapeText(n.Label), linkDestination(n.Href))
	default:
		label := markdown.Bold(escapeText(n.Label))
		if n.Link != nil {
			switch n.Link.Kind {
			case LinkDoc:
				label += " → " + codeSpan(n.Link.ContentID)
			case LinkGeneratedIndex:
				label += " → index " + codeSpan(n.Link.Slug)
			}
		}
		return label
	}
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "|", `\|`, "~", `\~`,
)

// escapeText backslash-escapes characters that start inline Markdown syntax.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// codeSpan wraps s in a backtick fence longer than any backtick run inside it.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	if longest == 0 {
		return markdown.Code(s)
	}
	fence := strings.Repeat("`", longest+1)
	return fence + " " + s + " " + fence
}

var destinationEscaper = strings.NewReplacer(" ", "%20", "<", "%3C", ">", "%3E")

// linkDestination returns href in a form that cannot end the link early.
func linkDestination(href string) string {
	if !strings.ContainsAny(href, " ()<>") {
		return href
	}
	return "<" + destinationEscaper.Replace(href) + ">"
}
