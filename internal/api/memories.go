package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
)

// CreateTextMemory stores a text memory.
func (c *Client) CreateTextMemory(ctx context.Context, req CreateMemoryRequest) (*Memory, error) {
	var mem Memory
	if err := c.postJSON(ctx, "/memories/text", req, &mem); err != nil {
		return nil, err
	}
	return &mem, nil
}

// UploadVoiceMemory uploads an audio recording to be transcribed and
// stored. title is optional.
func (c *Client) UploadVoiceMemory(ctx context.Context, filename string, audio io.Reader, title string) (*Memory, error) {
	fields := map[string]string{}
	if title != "" {
		fields["title"] = title
	}

	var mem Memory
	if err := c.postMultipart(ctx, "/memories/upload/voice", fields, "file", filename, audio, &mem); err != nil {
		return nil, err
	}
	return &mem, nil
}

// UploadImageMemory uploads an image; description is optional caption text.
func (c *Client) UploadImageMemory(ctx context.Context, filename string, image io.Reader, description string) (*Memory, error) {
	fields := map[string]string{}
	if description != "" {
		fields["description"] = description
	}

	var mem Memory
	if err := c.postMultipart(ctx, "/memories/upload/image", fields, "file", filename, image, &mem); err != nil {
		return nil, err
	}
	return &mem, nil
}

// Memories lists stored memories, newest first.
func (c *Client) Memories(ctx context.Context, q MemoryQuery) ([]Memory, error) {
	params := url.Values{}
	if q.Skip > 0 {
		params.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.ContentType != "" {
		params.Set("content_type", q.ContentType)
	}
	if q.Source != "" {
		params.Set("source", q.Source)
	}

	path := "/memories/"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var memories []Memory
	if err := c.getJSON(ctx, path, &memories); err != nil {
		return nil, err
	}
	return memories, nil
}

// SearchMemories runs a semantic search over stored memories.
func (c *Client) SearchMemories(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	var results []SearchResult
	if err := c.postJSON(ctx, "/memories/search", req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteMemory removes one memory.
func (c *Client) DeleteMemory(ctx context.Context, id int) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/memories/%d", id), nil)
}

// MemoryStats summarizes the stored collection.
func (c *Client) MemoryStats(ctx context.Context) (*MemoryStats, error) {
	var stats MemoryStats
	if err := c.getJSON(ctx, "/memories/stats/overview", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
