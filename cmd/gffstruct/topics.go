package gffstruct

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/gffstruct/pkg/cobrax/topics"
)

//go:embed topics/*.md topics/*.txt
var topicFiles embed.FS

// GrammarTopic is the help topic the grammar command shows
const GrammarTopic = "grammar"

// helpTopics returns the embedded topic files
func helpTopics() fs.FS {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return nil
	}
	return sub
}

// topicRenderer renders markdown styled for a terminal and laid out plainly otherwise
func topicRenderer() topics.Renderer {
	if styledStdout() {
		return topics.NewGlamourRenderer()
	}
	return topics.NewPlainGlamourRenderer()
}
