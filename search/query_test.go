package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"persona-chat/domain"
)

func TestParseQuery(t *testing.T) {
	t.Run("should extract terms and all flags", func(t *testing.T) {
		req := require.New(t)

		query := ParseQuery(`/find coffee order --room persona-3 --lang ko --limit 5`)

		req.Equal("coffee order", query.Terms)
		req.Equal(domain.RoomID("persona-3"), query.RoomID)
		req.Equal("ko", query.Lang)
		req.Equal(5, query.Limit)
	})

	t.Run("should default the limit and leave filters empty", func(t *testing.T) {
		req := require.New(t)

		query := ParseQuery("/find hello")

		req.Equal("hello", query.Terms)
		req.Empty(query.RoomID)
		req.Empty(query.Lang)
		req.Equal(10, query.Limit)
	})

	t.Run("should ignore a malformed limit", func(t *testing.T) {
		req := require.New(t)

		query := ParseQuery("/find hello --limit many")

		req.Equal(10, query.Limit)
	})

	t.Run("should lowercase the language flag", func(t *testing.T) {
		req := require.New(t)

		query := ParseQuery("/find hello --lang KO")

		req.Equal("ko", query.Lang)
	})

	t.Run("should keep terms that follow flags", func(t *testing.T) {
		req := require.New(t)

		query := ParseQuery("/find --room persona-1 where is my order")

		req.Equal("where is my order", query.Terms)
		req.Equal(domain.RoomID("persona-1"), query.RoomID)
	})
}
