package diff

// Chunk is one replaced run of lines in modified-lines output: starting at
// original line LineNumberOrig, LinesRemoved lines are replaced by Lines.
type Chunk struct {
	LineNumberOrig int      `json:"line_number_orig"`
	LinesRemoved   int      `json:"lines_removed"`
	Lines          []string `json:"lines"`
}

// Chunks returns the changes of original against formatted as replaced
// line runs, without context.
func Chunks(original, formatted []byte) []Chunk {
	d := Compute("", original, formatted, 0)
	if d == nil {
		return nil
	}

	chunks := make([]Chunk, 0, len(d.Hunks))
	for _, hunk := range d.Hunks {
		chunk := Chunk{LineNumberOrig: hunk.OriginalStart, Lines: []string{}}
		for _, line := range hunk.Lines {
			switch line.Kind {
			case Removed:
				chunk.LinesRemoved++
			case Added:
				chunk.Lines = append(chunk.Lines, line.Content)
			case Context:
			}
		}

		chunks = append(chunks, chunk)
	}

	return chunks
}
