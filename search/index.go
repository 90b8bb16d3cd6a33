package search

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/abadojack/whatlanggo"
	"github.com/blugelabs/bluge"

	"persona-chat/domain"
)

// Hit is one indexed message matched by a query.
type Hit struct {
	RoomID    domain.RoomID
	MessageID string
	Text      string
	Lang      string
	IsUser    bool
	Score     float64
}

// Index is an in-memory full-text index over the chat state. It is rebuilt
// from a room snapshot rather than updated incrementally, so it can never
// drift from the store after a sync swaps the whole map out.
type Index struct {
	mu     sync.Mutex
	log    *slog.Logger
	writer *bluge.Writer
	docs   int
}

func NewIndex(log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return nil, fmt.Errorf("open index writer: %w", err)
	}
	return &Index{log: log, writer: writer}, nil
}

func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.writer.Close()
}

// Rebuild replaces the whole index with the given snapshot. Each message is
// tagged with its detected language so queries can filter on it.
func (x *Index) Rebuild(rooms map[domain.RoomID]domain.ChatRoom) error {
	fresh, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return fmt.Errorf("open index writer: %w", err)
	}

	batch := bluge.NewBatch()
	docs := 0
	for roomID, room := range rooms {
		for _, message := range room.Messages {
			doc := messageDocument(roomID, message)
			batch.Update(doc.ID(), doc)
			docs++
		}
	}
	if err := fresh.Batch(batch); err != nil {
		_ = fresh.Close()
		return fmt.Errorf("index batch: %w", err)
	}

	x.mu.Lock()
	old := x.writer
	x.writer = fresh
	x.docs = docs
	x.mu.Unlock()

	if err := old.Close(); err != nil {
		x.log.Warn("Stale index writer close failed", "err", err)
	}
	x.log.Debug("Index rebuilt", "documents", docs, "rooms", len(rooms))
	return nil
}

// Documents returns the number of messages held by the current index.
func (x *Index) Documents() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.docs
}

// Search runs a parsed query against the current index.
func (x *Index) Search(ctx context.Context, query *Query) ([]Hit, error) {
	if query.Terms == "" {
		return nil, nil
	}

	x.mu.Lock()
	writer := x.writer
	x.mu.Unlock()

	reader, err := writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("open index reader: %w", err)
	}
	defer reader.Close()

	boolean := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(query.Terms).SetField("text"))
	if query.RoomID != "" {
		boolean.AddMust(bluge.NewTermQuery(string(query.RoomID)).SetField("room"))
	}
	if query.Lang != "" {
		boolean.AddMust(bluge.NewTermQuery(query.Lang).SetField("lang"))
	}

	request := bluge.NewTopNSearch(query.Limit, boolean).WithStandardAggregations()
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	var hits []Hit
	match, err := iterator.Next()
	for err == nil && match != nil {
		hit := Hit{Score: match.Score}
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				// _id is "<room>/<message>", split on the last slash so a
				// room id containing slashes still round-trips.
				roomID, messageID := splitDocID(string(value))
				hit.RoomID = domain.RoomID(roomID)
				hit.MessageID = messageID
			case "text":
				hit.Text = string(value)
			case "lang":
				hit.Lang = string(value)
			case "sender":
				hit.IsUser = string(value) == "user"
			}
			return true
		})
		if visitErr != nil {
			return nil, fmt.Errorf("index stored fields: %w", visitErr)
		}
		hits = append(hits, hit)
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("index iterate: %w", err)
	}
	return hits, nil
}

func messageDocument(roomID domain.RoomID, message domain.Message) *bluge.Document {
	sender := "persona"
	if message.IsUser {
		sender = "user"
	}
	info := whatlanggo.Detect(message.Text)

	return bluge.NewDocument(string(roomID) + "/" + message.ID).
		AddField(bluge.NewTextField("text", message.Text).StoreValue()).
		AddField(bluge.NewKeywordField("room", string(roomID)).StoreValue()).
		AddField(bluge.NewKeywordField("sender", sender).StoreValue()).
		AddField(bluge.NewKeywordField("lang", info.Lang.Iso6391()).StoreValue()).
		AddField(bluge.NewNumericField("at", float64(message.Timestamp)))
}

func splitDocID(id string) (string, string) {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '/' {
			return id[:i], id[i+1:]
		}
	}
	return "", id
}

// FormatHit renders a hit the way the REPL prints it.
func FormatHit(index int, hit Hit) string {
	return strconv.Itoa(index+1) + ". [" + string(hit.RoomID) + "] " + hit.Text
}
