package repository

import (
	"context"

	"NodeDashboard/internal/normalize"
)

// MemoryStore 固定文档的 DocumentStore，用于测试与本地演示
type MemoryStore struct {
	docs map[Source][]normalize.Document
	errs map[Source]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[Source][]normalize.Document),
		errs: make(map[Source]error),
	}
}

// Put 追加文档
func (s *MemoryStore) Put(source Source, docs ...normalize.Document) *MemoryStore {
	s.docs[source] = append(s.docs[source], docs...)
	return s
}

// Fail 令该数据源的读取返回 err
func (s *MemoryStore) Fail(source Source, err error) *MemoryStore {
	s.errs[source] = err
	return s
}

func (s *MemoryStore) Find(ctx context.Context, source Source, fields ...string) ([]normalize.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.errs[source]; err != nil {
		return nil, err
	}

	docs := make([]normalize.Document, 0, len(s.docs[source]))
	for _, doc := range s.docs[source] {
		docs = append(docs, project(doc, fields))
	}
	return docs, nil
}

func project(doc normalize.Document, fields []string) normalize.Document {
	out := make(normalize.Document, len(doc))
	if len(fields) == 0 {
		for k, v := range doc {
			out[k] = v
		}
		return out
	}
	for _, field := range fields {
		if v, ok := doc[field]; ok {
			out[field] = v
		}
	}
	return out
}
