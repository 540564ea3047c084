package domain

import (
	"time"

	"github.com/google/uuid"
)

// BundleArticle is the only node type this service reads or writes.
const BundleArticle = "article"

// MaxTitleLength is the longest title, in characters, storage accepts.
const MaxTitleLength = 255

// TextField is a formatted long-text value such as a node body.
type TextField struct {
	Value  string `json:"value"`
	Format string `json:"format"`
}

// Node is a content entity. Articles are nodes whose Type is BundleArticle.
type Node struct {
	ID        int64     `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      TextField `json:"body"`
	Status    bool      `json:"status"`
	AuthorID  int64     `json:"uid"`
	CreatedAt time.Time `json:"created"`
	ChangedAt time.Time `json:"changed"`
}

// IsArticle reports whether the node belongs to the article bundle.
func (n *Node) IsArticle() bool {
	return n != nil && n.Type == BundleArticle
}

// Published reports whether the node is visible to viewers without edit rights.
func (n *Node) Published() bool {
	return n.Status
}

// NewArticle builds an unsaved article node authored by uid.
func NewArticle(uid int64, title string, body TextField, published bool) *Node {
	now := time.Now().UTC()
	return &Node{
		UUID:      uuid.New(),
		Type:      BundleArticle,
		Title:     title,
		Body:      body,
		Status:    published,
		AuthorID:  uid,
		CreatedAt: now,
		ChangedAt: now,
	}
}
