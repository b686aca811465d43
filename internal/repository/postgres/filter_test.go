package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pimapi/internal/repository"
)

func TestBuildProductWhere(t *testing.T) {
	t.Run("zero filter excludes only deleted rows", func(t *testing.T) {
		where, args := buildProductWhere(repository.ProductFilter{})
		assert.Equal(t, "deleted_at IS NULL", where)
		assert.Empty(t, args)
	})

	t.Run("search adds name predicate", func(t *testing.T) {
		where, args := buildProductWhere(repository.ProductFilter{Search: "lamp"})
		assert.Equal(t, "deleted_at IS NULL AND name ILIKE $1", where)
		assert.Equal(t, []any{"%lamp%"}, args)
	})

	t.Run("archived means archived and not published", func(t *testing.T) {
		where, _ := buildProductWhere(repository.ProductFilter{Archived: true})
		assert.Equal(t, "deleted_at IS NULL AND is_archived = TRUE AND is_published = FALSE", where)
	})

	t.Run("archived and published conjoin to a contradiction", func(t *testing.T) {
		// Both predicates are ANDed; no row can satisfy is_published = FALSE
		// and is_published = TRUE at once.
		where, _ := buildProductWhere(repository.ProductFilter{Archived: true, Published: true})
		assert.Contains(t, where, "is_archived = TRUE AND is_published = FALSE")
		assert.Contains(t, where, "is_published = TRUE")
		assert.Equal(t,
			"deleted_at IS NULL AND is_archived = TRUE AND is_published = FALSE AND is_published = TRUE",
			where)
	})
}

func TestBuildUserWhere(t *testing.T) {
	where, args := buildUserWhere(repository.UserFilter{Search: "ed"})
	assert.Equal(t, "deleted_at IS NULL AND (name ILIKE $1 OR email ILIKE $1 OR role ILIKE $1)", where)
	assert.Equal(t, []any{"%ed%"}, args)

	where, args = buildUserWhere(repository.UserFilter{})
	assert.Equal(t, "deleted_at IS NULL", where)
	assert.Empty(t, args)
}
