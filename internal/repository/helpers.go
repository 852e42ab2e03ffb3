package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
)

// decoder turns a stored document into a record with its ID populated.
type decoder[T any] func(docstore.Document) (*T, error)

func decodeDoc[T any](doc docstore.Document, v *T) error {
	if err := json.Unmarshal(doc.Data, v); err != nil {
		return fmt.Errorf("decoding document %s: %w", doc.ID, err)
	}
	return nil
}

// translate maps store-level sentinels onto domain errors.
func translate(err error, c docstore.Collection, id string) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%s %q: %w", c, id, domain.ErrNotFound)
	}
	return err
}

func getOne[T any](ctx context.Context, docs docstore.Docs, c docstore.Collection, id string, dec decoder[T]) (*T, error) {
	doc, err := docs.Get(ctx, c, id)
	if err != nil {
		return nil, translate(err, c, id)
	}
	return dec(doc)
}

func exists(ctx context.Context, docs docstore.Docs, c docstore.Collection, id string) (bool, error) {
	_, err := docs.Get(ctx, c, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func listAll[T any](ctx context.Context, docs docstore.Docs, c docstore.Collection, dec decoder[T]) ([]*T, error) {
	list, err := docs.List(ctx, c)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(list))
	for _, doc := range list {
		v, err := dec(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func merge(ctx context.Context, docs docstore.Docs, c docstore.Collection, id string, patch any) error {
	if err := docs.Merge(ctx, c, id, patch); err != nil {
		return translate(err, c, id)
	}
	return nil
}
