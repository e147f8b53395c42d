package router

import (
	"fmt"
	"testing"
)

func buildBenchTable(b *testing.B, patterns ...string) *Table {
	b.Helper()

	builder := NewBuilder()
	for i, p := range patterns {
		if err := builder.Register(p, i); err != nil {
			b.Fatal(err)
		}
	}
	return builder.Finalize()
}

func BenchmarkMatch_Static(b *testing.B) {
	table := buildBenchTable(b,
		"/",
		"/health",
		"/api/v1/users",
		"/api/v1/posts",
		"/api/v1/comments",
		"/api/v2/users",
		"/api/v2/posts",
	)

	paths := map[string]string{
		"root":      "/",
		"health":    "/health",
		"nested_v1": "/api/v1/users",
		"nested_v2": "/api/v2/posts",
	}

	for name, path := range paths {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, ok := table.Match(path); !ok {
					b.Fatal("expected match")
				}
			}
		})
	}
}

func BenchmarkMatch_Dynamic(b *testing.B) {
	table := buildBenchTable(b,
		"/users/{id}",
		"/users/{id}/posts",
		"/users/{user_id}/posts/{post_id}",
		"/users/{user_id}/posts/{post_id}/comments/{comment_id}",
		"/categories/{cat}/products/{prod}/reviews/{rev}",
	)

	paths := map[string]string{
		"single_param":        "/users/123",
		"single_param_nested": "/users/123/posts",
		"two_params":          "/users/123/posts/456",
		"three_params":        "/users/123/posts/456/comments/789",
	}

	for name, path := range paths {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, ok := table.Match(path); !ok {
					b.Fatal("expected match")
				}
			}
		})
	}
}

func BenchmarkMatch_Scaling(b *testing.B) {
	for _, routeCount := range []int{10, 50, 100, 500} {
		builder := NewBuilder()
		for i := 0; i < routeCount; i++ {
			if err := builder.Register(fmt.Sprintf("/api/v1/resource%d", i), i); err != nil {
				b.Fatal(err)
			}
		}
		table := builder.Finalize()

		// Always match the middle route.
		path := fmt.Sprintf("/api/v1/resource%d", routeCount/2)

		b.Run(fmt.Sprintf("routes_%d", routeCount), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, ok := table.Match(path); !ok {
					b.Fatal("expected match")
				}
			}
		})
	}
}

func BenchmarkMatch_Wildcard(b *testing.B) {
	table := buildBenchTable(b,
		"/static/{*path}",
		"/assets/{*filepath}",
	)

	paths := map[string]string{
		"short_path": "/static/css/style.css",
		"long_path":  "/static/images/icons/social/facebook.png",
	}

	for name, path := range paths {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, ok := table.Match(path); !ok {
					b.Fatal("expected match")
				}
			}
		})
	}
}
