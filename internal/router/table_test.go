package router

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTable registers the given patterns with their index as payload
// and finalizes the table, failing the test on any registration error.
func buildTable(t *testing.T, patterns ...string) *Table {
	t.Helper()

	b := NewBuilder()
	for i, p := range patterns {
		require.NoError(t, b.Register(p, i))
	}
	return b.Finalize()
}

func TestTable_Match_Static(t *testing.T) {
	t.Parallel()

	table := buildTable(t,
		"/",
		"/health",
		"/api/v1/users",
		"/api/v1/posts",
		"/api/v2/users",
	)

	tests := []struct {
		path    string
		pattern string
	}{
		{"/", "/"},
		{"/health", "/health"},
		{"/api/v1/users", "/api/v1/users"},
		{"/api/v1/posts", "/api/v1/posts"},
		{"/api/v2/users", "/api/v2/users"},
		{"/health/", "/health"},
	}

	for _, tt := range tests {
		result, ok := table.Match(tt.path)
		require.True(t, ok, "path %q should match", tt.path)
		assert.Equal(t, tt.pattern, result.Pattern)
		assert.Empty(t, result.Params)
	}
}

func TestTable_Match_Params(t *testing.T) {
	t.Parallel()

	table := buildTable(t,
		"/users/{id}",
		"/users/{id}/posts",
		"/users/{user_id}/posts/{post_id}",
		"/users/{user_id}/posts/{post_id}/comments/{comment_id}",
	)

	tests := []struct {
		path     string
		pattern  string
		expected map[string]string
	}{
		{
			path:     "/users/123",
			pattern:  "/users/{id}",
			expected: map[string]string{"id": "123"},
		},
		{
			path:     "/users/123/posts",
			pattern:  "/users/{id}/posts",
			expected: map[string]string{"id": "123"},
		},
		{
			path:    "/users/123/posts/456",
			pattern: "/users/{user_id}/posts/{post_id}",
			expected: map[string]string{
				"user_id": "123",
				"post_id": "456",
			},
		},
		{
			path:    "/users/123/posts/456/comments/789",
			pattern: "/users/{user_id}/posts/{post_id}/comments/{comment_id}",
			expected: map[string]string{
				"user_id":    "123",
				"post_id":    "456",
				"comment_id": "789",
			},
		},
	}

	for _, tt := range tests {
		result, ok := table.Match(tt.path)
		require.True(t, ok, "path %q should match", tt.path)
		assert.Equal(t, tt.pattern, result.Pattern)
		assert.Equal(t, tt.expected, result.Params.Map())
	}
}

func TestTable_Match_StaticBeatsParam(t *testing.T) {
	t.Parallel()

	table := buildTable(t, "/users/me", "/users/{id}")

	result, ok := table.Match("/users/me")
	require.True(t, ok)
	assert.Equal(t, "/users/me", result.Pattern)
	assert.Empty(t, result.Params)

	result, ok = table.Match("/users/42")
	require.True(t, ok)
	assert.Equal(t, "/users/{id}", result.Pattern)
	v, found := result.Params.Get("id")
	require.True(t, found)
	assert.Equal(t, "42", v)
}

func TestTable_Match_Wildcard(t *testing.T) {
	t.Parallel()

	table := buildTable(t, "/static/{*path}", "/assets/{*filepath}")

	result, ok := table.Match("/static/css/a.css")
	require.True(t, ok)
	assert.Equal(t, "/static/{*path}", result.Pattern)
	v, found := result.Params.Get("path")
	require.True(t, found)
	assert.Equal(t, "css/a.css", v)

	result, ok = table.Match("/assets/images/icons/social/facebook.png")
	require.True(t, ok)
	v, _ = result.Params.Get("filepath")
	assert.Equal(t, "images/icons/social/facebook.png", v)

	// One component is enough, zero is not.
	_, ok = table.Match("/static")
	assert.False(t, ok)

	result, ok = table.Match("/static/x")
	require.True(t, ok)
	v, _ = result.Params.Get("path")
	assert.Equal(t, "x", v)
}

func TestTable_Match_ParamDeadEndFallsBackToWildcard(t *testing.T) {
	t.Parallel()

	table := buildTable(t,
		"/files/{name}/meta",
		"/files/{*path}",
	)

	// The param edge consumes "report" but dead-ends at "raw", so the
	// matcher must back out of the binding and take the shallower
	// catch-all instead.
	result, ok := table.Match("/files/report/raw")
	require.True(t, ok)
	assert.Equal(t, "/files/{*path}", result.Pattern)
	assert.Equal(t, map[string]string{"path": "report/raw"}, result.Params.Map())

	result, ok = table.Match("/files/report/meta")
	require.True(t, ok)
	assert.Equal(t, "/files/{name}/meta", result.Pattern)
	assert.Equal(t, map[string]string{"name": "report"}, result.Params.Map())
}

func TestTable_Match_RootWildcardFallback(t *testing.T) {
	t.Parallel()

	table := buildTable(t,
		"/{*rest}",
		"/a/{b}/c",
	)

	result, ok := table.Match("/a/x/c")
	require.True(t, ok)
	assert.Equal(t, "/a/{b}/c", result.Pattern)

	result, ok = table.Match("/a/x/d")
	require.True(t, ok)
	assert.Equal(t, "/{*rest}", result.Pattern)
	assert.Equal(t, map[string]string{"rest": "a/x/d"}, result.Params.Map())
}

func TestTable_Match_NoMatch(t *testing.T) {
	t.Parallel()

	table := buildTable(t, "/api/v1/users", "/users/{id}")

	for _, path := range []string{
		"",
		"/",
		"/api",
		"/api/v1",
		"/api/v1/unknown",
		"/api/v1/users/extra",
		"/users",
		"/users/1/extra",
		"/users//",
		"no-leading-slash",
	} {
		_, ok := table.Match(path)
		assert.False(t, ok, "path %q should not match", path)
	}
}

func TestTable_Match_EmptyComponentNeverBindsParam(t *testing.T) {
	t.Parallel()

	table := buildTable(t, "/a/{x}/b")

	// Interior empty components cannot satisfy a parameter segment.
	_, ok := table.Match("/a//b")
	assert.False(t, ok)
}

func TestTable_Match_Idempotent(t *testing.T) {
	t.Parallel()

	table := buildTable(t, "/users/{id}", "/static/{*path}")

	first, ok := table.Match("/users/7")
	require.True(t, ok)

	for i := 0; i < 100; i++ {
		result, ok := table.Match("/users/7")
		require.True(t, ok)
		assert.Equal(t, first, result)
	}
}

func TestTable_Match_OrderIndependent(t *testing.T) {
	t.Parallel()

	patterns := []string{"/users/me", "/users/{id}", "/static/{*path}", "/api/v1/users"}
	reversed := []string{"/api/v1/users", "/static/{*path}", "/users/{id}", "/users/me"}

	forward := buildTable(t, patterns...)
	backward := buildTable(t, reversed...)

	for _, path := range []string{
		"/users/me", "/users/42", "/static/a/b/c", "/api/v1/users", "/nope",
	} {
		fr, fok := forward.Match(path)
		br, bok := backward.Match(path)
		assert.Equal(t, fok, bok, "path %q", path)
		assert.Equal(t, fr.Pattern, br.Pattern, "path %q", path)
		assert.Equal(t, fr.Params.Map(), br.Params.Map(), "path %q", path)
	}
}

func TestBuilder_Register_DuplicateRoute(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	require.NoError(t, b.Register("/users/{id}", 1))

	err := b.Register("/users/{id}", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateRoute)

	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "/users/{id}", cerr.Existing)

	// Trailing-slash variants collapse to the same match surface.
	err = b.Register("/users/{id}/", 3)
	assert.ErrorIs(t, err, ErrDuplicateRoute)
}

func TestBuilder_Register_ParamNameConflict(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	require.NoError(t, b.Register("/users/{id}", 1))

	err := b.Register("/users/{uid}/posts", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParamNameConflict)

	// The same name on the shared edge is fine.
	require.NoError(t, b.Register("/users/{id}/posts", 3))
}

func TestBuilder_Register_WildcardConflict(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	require.NoError(t, b.Register("/static/{*path}", 1))

	err := b.Register("/static/{*other}", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWildcardConflict)

	err = b.Register("/static/{*path}", 3)
	assert.ErrorIs(t, err, ErrDuplicateRoute)
}

func TestBuilder_Register_FailureLeavesTableUsable(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	require.NoError(t, b.Register("/users/{id}", 1))
	require.Error(t, b.Register("/users/{uid}", 2))
	require.NoError(t, b.Register("/posts/{id}", 3))

	table := b.Finalize()
	assert.Equal(t, 2, table.Len())

	result, ok := table.Match("/users/9")
	require.True(t, ok)
	assert.Equal(t, 1, result.Value)

	result, ok = table.Match("/posts/9")
	require.True(t, ok)
	assert.Equal(t, 3, result.Value)
}

func TestBuilder_Frozen(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	require.NoError(t, b.Register("/health", 1))

	table := b.Finalize()
	assert.Equal(t, 1, table.Len())

	err := b.Register("/late", 2)
	assert.ErrorIs(t, err, ErrTableFrozen)
	assert.Equal(t, 1, table.Len())
}

func TestTable_Patterns(t *testing.T) {
	t.Parallel()

	table := buildTable(t, "/a", "/b/{c}")
	assert.Equal(t, []string{"/a", "/b/{c}"}, table.Patterns())
}

func TestParams_GetAndMap(t *testing.T) {
	t.Parallel()

	p := Params{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}

	v, ok := p.Get("b")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = p.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, p.Map())
	assert.Nil(t, Params(nil).Map())
}

func TestTable_Match_Scaling(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	for i := 0; i < 500; i++ {
		require.NoError(t, b.Register(fmt.Sprintf("/api/v1/resource%d", i), i))
	}
	table := b.Finalize()

	result, ok := table.Match("/api/v1/resource250")
	require.True(t, ok)
	assert.Equal(t, 250, result.Value)
}
