package topics

// Renderer formats topic content for display
type Renderer interface {
	// Render formats content read from a file with extension ext
	Render(content string, ext string) string
}

// PlainRenderer returns content as is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}
