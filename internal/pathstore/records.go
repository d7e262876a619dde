package pathstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgallion1/casgest/internal/booklet"
)

const (
	rootPrefix   = "bulletins"
	hashPrefix   = rootPrefix + "/by_hash"
	recordSource = "casgest"
)

// BookletKey returns the record prefix for a booklet. Booklets without an
// issue date are keyed by their content hash.
func BookletKey(bk *booklet.Booklet, contentHash string) string {
	if date := bk.IssueDateString(); date != "" {
		return rootPrefix + "/" + date
	}
	id := contentHash
	if len(id) > 16 {
		id = id[:16]
	}
	return rootPrefix + "/undated-" + id
}

// Meta is the value written at <booklet key>/meta.
type Meta struct {
	Number      string `json:"number"`
	IssueDate   string `json:"issue_date,omitempty"`
	Filename    string `json:"filename"`
	Pages       int    `json:"pages"`
	Chambers    int    `json:"chambers"`
	CaseFiles   int    `json:"case_files"`
	ContentHash string `json:"content_hash"`
}

// Publish writes the booklet meta record, one record per chamber and the
// content-hash index entry. It returns the number of records written.
func (c *Client) Publish(ctx context.Context, bk *booklet.Booklet, contentHash string) (int, error) {
	prefix := BookletKey(bk, contentHash)
	source := recordSource + ":" + bk.Filename
	written := 0

	meta := Meta{
		Number:      bk.Number,
		IssueDate:   bk.IssueDateString(),
		Filename:    bk.Filename,
		Pages:       bk.Pages,
		Chambers:    len(bk.Chambers),
		CaseFiles:   bk.CaseFileCount(),
		ContentHash: contentHash,
	}
	if err := c.PutNode(ctx, prefix+"/meta", NodeRequest{Value: meta, MemoryType: "semantic", Salience: 0.5, Source: source}); err != nil {
		return written, err
	}
	written++

	for i, ch := range bk.Chambers {
		key := prefix + "/chambers/" + strconv.Itoa(i)
		if err := c.PutNode(ctx, key, NodeRequest{Value: ch, MemoryType: "semantic", Salience: 0.3, Source: source}); err != nil {
			return written, err
		}
		written++
	}

	if contentHash != "" {
		err := c.PutNode(ctx, hashPrefix+"/"+contentHash, NodeRequest{
			Value:      map[string]string{"key": prefix, "filename": bk.Filename},
			MemoryType: "metacognitive",
			Salience:   0.1,
			Source:     source,
		})
		if err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// LookupHash returns the booklet key previously published for a content
// hash, or "" when none exists.
func (c *Client) LookupHash(ctx context.Context, contentHash string) (string, error) {
	node, err := c.GetNode(ctx, hashPrefix+"/"+contentHash)
	if err != nil || node == nil {
		return "", err
	}
	var v struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(node.Value, &v); err != nil {
		return "", fmt.Errorf("decode hash entry: %w", err)
	}
	return v.Key, nil
}

// ListBooklets returns the meta records of published booklets.
func (c *Client) ListBooklets(ctx context.Context, limit int) ([]Meta, error) {
	nodes, err := c.ListChildren(ctx, rootPrefix, limit)
	if err != nil {
		return nil, err
	}
	metas := []Meta{}
	for _, n := range nodes {
		if !isMetaKey(n.Key) {
			continue
		}
		var m Meta
		if err := json.Unmarshal(n.Value, &m); err != nil {
			continue
		}
		metas = append(metas, m)
	}
	return metas, nil
}

// DeleteBooklet removes every record under a booklet key and its hash
// index entry.
func (c *Client) DeleteBooklet(ctx context.Context, key, contentHash string) error {
	if err := c.DeleteNode(ctx, key, true); err != nil {
		return err
	}
	if contentHash != "" {
		return c.DeleteNode(ctx, hashPrefix+"/"+contentHash, false)
	}
	return nil
}

// GetMeta reads the meta record under a booklet key.
func (c *Client) GetMeta(ctx context.Context, key string) (*Meta, error) {
	node, err := c.GetNode(ctx, key+"/meta")
	if err != nil || node == nil {
		return nil, err
	}
	var m Meta
	if err := json.Unmarshal(node.Value, &m); err != nil {
		return nil, fmt.Errorf("decode meta: %w", err)
	}
	return &m, nil
}

// isMetaKey accepts both slash and dot separated key paths.
func isMetaKey(key string) bool {
	return strings.HasSuffix(key, "/meta") || strings.HasSuffix(key, ".meta")
}
