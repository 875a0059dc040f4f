package store

import (
	"encoding/base64"
	"sort"
	"strings"

	"github.com/edgekv-dev/edgekv/domain/entities"
	"github.com/edgekv-dev/edgekv/domain/errors"
	"github.com/edgekv-dev/edgekv/domain/ports"
)

// List returns one page of keys from the store in ascending lexicographic
// order: keys strictly greater than the decoded cursor, matching the
// prefix, truncated to the limit. next_cursor is set only when truncation
// actually removed entries.
func (r *Registry) List(store entities.StoreKey, opts ports.ListOptions) (entities.ListingDocument, error) {
	cursor, err := decodeCursor(opts.Cursor)
	if err != nil {
		return entities.ListingDocument{}, err
	}

	var keys []string
	err = r.read(func() error {
		objects, ok := r.stores[store]
		if !ok {
			return errors.KvInternalError
		}
		keys = make([]string, 0, len(objects))
		for k := range objects {
			if cursor != "" && k <= cursor {
				continue
			}
			if opts.Prefix != "" && !strings.HasPrefix(k, opts.Prefix) {
				continue
			}
			keys = append(keys, k)
		}
		return nil
	})
	if err != nil {
		return entities.ListingDocument{}, err
	}
	sort.Strings(keys)

	doc := entities.ListingDocument{
		Data: keys,
		Meta: entities.ListingMeta{
			Limit:  opts.Limit,
			Prefix: opts.Prefix,
		},
	}
	if uint32(len(keys)) > opts.Limit {
		doc.Data = keys[:opts.Limit]
		if len(doc.Data) > 0 {
			doc.Meta.NextCursor = encodeCursor(doc.Data[len(doc.Data)-1])
		}
	}
	if doc.Data == nil {
		doc.Data = []string{}
	}
	return doc, nil
}

// encodeCursor wraps the last emitted key as an opaque resume token.
func encodeCursor(lastKey string) string {
	return base64.StdEncoding.EncodeToString([]byte(lastKey))
}

// decodeCursor unwraps a resume token back to the key it encodes. An
// undecodable token is a client error.
func decodeCursor(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", errors.KvBadRequest
	}
	return string(raw), nil
}
