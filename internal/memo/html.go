// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memo

import (
	"html"
	"strings"
)

// BasicHTML renders memo markdown as a standalone HTML page. It handles the
// subset the memo actually emits: #/##/### headings, "- " bullets, and
// paragraphs. Not a general markdown renderer.
func BasicHTML(md string) string {
	var body strings.Builder
	inList := false

	closeList := func() {
		if inList {
			body.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			closeList()
			body.WriteString("<div style='height:8px'></div>\n")
		case strings.HasPrefix(line, "### "):
			closeList()
			body.WriteString("<h3>" + html.EscapeString(line[4:]) + "</h3>\n")
		case strings.HasPrefix(line, "## "):
			closeList()
			body.WriteString("<h2>" + html.EscapeString(line[3:]) + "</h2>\n")
		case strings.HasPrefix(line, "# "):
			closeList()
			body.WriteString("<h1>" + html.EscapeString(line[2:]) + "</h1>\n")
		case strings.HasPrefix(trimmed, "- "):
			if !inList {
				body.WriteString("<ul>\n")
				inList = true
			}
			body.WriteString("<li>" + html.EscapeString(strings.TrimPrefix(trimmed, "- ")) + "</li>\n")
		default:
			closeList()
			body.WriteString("<p>" + html.EscapeString(line) + "</p>\n")
		}
	}
	closeList()

	return `<!doctype html>
<html>
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Weekly Signal Memo</title>
<style>
  body { font-family: -apple-system, system-ui, Arial; margin: 24px; line-height: 1.4; }
  h1 { font-size: 22px; margin: 0 0 14px; }
  h2 { font-size: 16px; margin: 18px 0 8px; }
  h3 { font-size: 14px; margin: 14px 0 6px; }
  p, li { font-size: 13px; }
  ul { margin: 6px 0 10px 18px; }
</style>
</head>
<body>
` + body.String() + `</body>
</html>
`
}
