package project

import "regexp"

// Extension is the file extension appended to every saved project.
const Extension = ".sb3"

// maxTitleLength caps how much of a title makes it into a filename,
// and how much of a filename makes it back into a title. Measured in
// runes so multibyte titles are never cut mid-sequence.
const maxTitleLength = 100

var titlePattern = regexp.MustCompile(`^(.*)\.sb[23]?$`)

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > maxTitleLength {
		return string(runes[:maxTitleLength])
	}
	return title
}

// Filename derives the on-disk filename for a project title.
// An empty title falls back to defaultTitle; the result is the title
// truncated to 100 characters with the project extension appended.
func Filename(title, defaultTitle string) string {
	if title == "" {
		title = defaultTitle
	}
	return truncateTitle(title) + Extension
}

// TitleFromFilename recovers a project title from a chosen filename.
// Only the recognized project extensions (.sb, .sb2, .sb3) match; any
// other name yields an empty string and the caller leaves the current
// title untouched.
func TitleFromFilename(filename string) string {
	match := titlePattern.FindStringSubmatch(filename)
	if match == nil {
		return ""
	}
	return truncateTitle(match[1])
}
