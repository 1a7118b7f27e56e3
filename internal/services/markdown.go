package services

import "github.com/russross/blackfriday"

const (
	markdownHTMLFlags = blackfriday.HTML_SKIP_HTML |
		blackfriday.HTML_SAFELINK |
		blackfriday.HTML_NOFOLLOW_LINKS |
		blackfriday.HTML_HREF_TARGET_BLANK

	markdownExtensions = blackfriday.EXTENSION_FENCED_CODE |
		blackfriday.EXTENSION_NO_INTRA_EMPHASIS |
		blackfriday.EXTENSION_TABLES |
		blackfriday.EXTENSION_AUTOLINK |
		blackfriday.EXTENSION_STRIKETHROUGH |
		blackfriday.EXTENSION_HARD_LINE_BREAK
)

// RenderMarkdown converts a model reply to HTML for the chat UI. Raw HTML in
// the reply is dropped.
func RenderMarkdown(text string) string {
	renderer := blackfriday.HtmlRenderer(markdownHTMLFlags, "", "")
	return string(blackfriday.Markdown([]byte(text), renderer, markdownExtensions))
}
