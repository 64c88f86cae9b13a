package receipt

// RenderArtifact is the output of a successful rasterization: the same pixels
// in two encodings, because delivery channels need different shapes. Both are
// immutable once produced; a new user action produces a fresh artifact.
type RenderArtifact struct {
	// Displayable is a self-contained data URI (image/png) for inline display
	Displayable string
	// Binary is the raw PNG, the file-shaped payload the cascade attaches,
	// saves, or uploads
	Binary []byte
	// Width and Height are the captured extent in CSS pixels
	Width  int64
	Height int64
}

// Valid reports whether the artifact is usable by the delivery cascade. A
// displayable-only artifact is not: every channel needs the binary payload.
func (a *RenderArtifact) Valid() bool {
	return a != nil && len(a.Binary) > 0 && a.Displayable != ""
}
