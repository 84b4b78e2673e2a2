package filter

import "strings"

// pandoc emits inline code and C++ scoped names on one line, which browsers
// refuse to wrap; it also leaves stray U+00C2/U+00A0 from mis-decoded
// non-breaking spaces.
var webReplacer = strings.NewReplacer(
	"code>", "code>\n",
	"::", "::<wbr>",
	"\u00c2", "",
	"\u00a0", "",
)

// WebLine is the post-processing applied to every line of a website page.
func WebLine(s string) string {
	return webReplacer.Replace(s)
}
