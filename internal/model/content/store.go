package content

// Store exposes static content for HTTP handlers and chat sessions.
type Store interface {
	Tips() []Tip
	Resources() []Resource
	QuickReplies() []string
	CrisisNotice() Notice
}

// MemoryStore implements Store over an in-memory Catalog.
type MemoryStore struct {
	catalog Catalog
}

// NewMemoryStore returns a MemoryStore holding its own copy of catalog.
func NewMemoryStore(catalog Catalog) *MemoryStore {
	return &MemoryStore{catalog: Catalog{
		Tips:         append([]Tip(nil), catalog.Tips...),
		Resources:    append([]Resource(nil), catalog.Resources...),
		QuickReplies: append([]string(nil), catalog.QuickReplies...),
		Notice: Notice{
			Title:     catalog.Notice.Title,
			Body:      catalog.Notice.Body,
			Resources: append([]Resource(nil), catalog.Notice.Resources...),
		},
	}}
}

func (s *MemoryStore) Tips() []Tip {
	return append([]Tip(nil), s.catalog.Tips...)
}

func (s *MemoryStore) Resources() []Resource {
	return append([]Resource(nil), s.catalog.Resources...)
}

func (s *MemoryStore) QuickReplies() []string {
	return append([]string(nil), s.catalog.QuickReplies...)
}

func (s *MemoryStore) CrisisNotice() Notice {
	notice := s.catalog.Notice
	notice.Resources = append([]Resource(nil), notice.Resources...)
	return notice
}
