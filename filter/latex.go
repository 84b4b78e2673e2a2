package filter

import "strings"

// longtable does not wrap cell text within the page width; tabulary does.
var latexReplacer = strings.NewReplacer(
	`\begin{longtable}[]{@{}ll@{}}`, `\begin{tabulary}{\textwidth}{lJ}`,
	`\begin{longtable}[]{@{}lll@{}}`, `\begin{tabulary}{\textwidth}{lJJ}`,
	`\begin{longtable}[]{@{}llll@{}}`, `\begin{tabulary}{\textwidth}{lJJJ}`,
	`\endhead`, ``,
	`\end{longtable}`, `\end{tabulary}`,
)

// LatexLine rewrites the table environments in a pandoc LaTeX fragment.
func LatexLine(s string) string {
	return latexReplacer.Replace(s)
}
