package pretty

import (
	"fmt"
)

// FormatFileError formats a file that could not be formatted.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// FormatFileStatus formats the one-line outcome of a formatted file,
// for example "src/main.rs: formatted (+3 -1)".
func (s *Styles) FormatFileStatus(path, status string, added, removed int) string {
	line := s.FilePath.Render(path) + ": " + s.Changed.Render(status)
	if added > 0 || removed > 0 {
		line += " " + s.Dim.Render("(") +
			s.DiffAdd.Render(fmt.Sprintf("+%d", added)) + " " +
			s.DiffRemove.Render(fmt.Sprintf("-%d", removed)) +
			s.Dim.Render(")")
	}

	return line + "\n"
}
