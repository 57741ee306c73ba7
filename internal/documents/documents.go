package documents

import (
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"

	"persona-chat/internal/models"
)

// Preparer turns raw comments and posts into bounded, overlapping chunks
// suitable for prompting.
type Preparer struct {
	chunkSize    int
	chunkOverlap int
}

func NewPreparer(chunkSize, chunkOverlap int) *Preparer {
	// if values are missing, use default values
	if chunkSize == 0 || chunkOverlap == 0 {
		chunkSize = models.DefaultChunkSize
		chunkOverlap = models.DefaultChunkOverlap
	}
	return &Preparer{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// Prepare tags each comment and post with its source and original index,
// then splits long items on paragraph and sentence boundaries, keeping an
// overlap between neighboring chunks of the same item.
func (p *Preparer) Prepare(comments, posts []string) ([]schema.Document, error) {
	docs := make([]schema.Document, 0, len(comments)+len(posts))
	for i, comment := range comments {
		docs = append(docs, schema.Document{
			PageContent: comment,
			Metadata:    map[string]any{"source": models.SourceComment, "index": i},
		})
	}
	for i, post := range posts {
		docs = append(docs, schema.Document{
			PageContent: post,
			Metadata:    map[string]any{"source": models.SourcePost, "index": i},
		})
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(p.chunkSize),
		textsplitter.WithChunkOverlap(p.chunkOverlap),
	)
	return textsplitter.SplitDocuments(splitter, docs)
}
