package emit

// FileResult describes one output file of a generation run.
type FileResult struct {
	// Path is the output file path (outputDir joined with RelPath).
	Path string
	// RelPath is the path relative to the output directory, slash separated.
	RelPath string
	// TypeName is the schema type rendered into the file.
	TypeName string
	// Hash is the hex xxhash64 of the rendered content.
	Hash   string
	Status Status
}

// GenerationResult is the outcome of one Emit call.
type GenerationResult struct {
	OutputDir string
	// Files sorted by RelPath.
	Files []FileResult
	// Status summarizes Files: unchanged when nothing changed, updated when any
	// file was updated, created otherwise.
	Status Status
}

// Changed reports whether any file was created or updated.
func (r *GenerationResult) Changed() bool {
	return r.Status != StatusUnchanged
}

// Count returns the number of files with the given status.
func (r *GenerationResult) Count(s Status) int {
	n := 0

	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}

	return n
}

// Lookup returns the result for a relative path.
func (r *GenerationResult) Lookup(relPath string) (FileResult, bool) {
	for _, f := range r.Files {
		if f.RelPath == relPath {
			return f, true
		}
	}

	return FileResult{}, false
}

func summarize(files []FileResult) Status {
	overall := StatusUnchanged

	for _, f := range files {
		switch f.Status {
		case StatusUpdated:
			return StatusUpdated
		case StatusCreated:
			overall = StatusCreated
		}
	}

	return overall
}
