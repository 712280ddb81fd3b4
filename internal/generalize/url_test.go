package generalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harsight/harsight-go/internal/pattern"
)

func newCatalogue(t *testing.T) *pattern.Catalogue {
	t.Helper()
	cat, err := pattern.NewCatalogue()
	require.NoError(t, err)
	return cat
}

func Test_URL(t *testing.T) {
	cat := newCatalogue(t)

	t.Run("numeric path segments become named placeholders", func(t *testing.T) {
		res := URL(cat, "/users/123456/orders/7")

		require.Equal(t, "/users/{userId}/orders/{orderId}", res.Generalized)
		require.Len(t, res.Patterns, 2)
		require.Equal(t, pattern.TypeNumericID, res.Patterns[0].Type)
		require.Equal(t, pattern.TypeNumericID, res.Patterns[1].Type)
		require.Equal(t, "123456", res.Patterns[0].OriginalValue)
		require.Equal(t, "{userId}", res.Patterns[0].GeneralizedValue)
	})

	t.Run("uuid segments use the preceding segment for naming", func(t *testing.T) {
		res := URL(cat, "https://api.example.com/accounts/123e4567-e89b-12d3-a456-426614174000")

		require.Equal(t, "https://api.example.com/accounts/{accountId}", res.Generalized)
		require.Len(t, res.Patterns, 1)
		require.Equal(t, pattern.TypeUUID, res.Patterns[0].Type)
	})

	t.Run("falls back to id with no preceding segment", func(t *testing.T) {
		res := URL(cat, "/98765")

		require.Equal(t, "/{id}", res.Generalized)
	})

	t.Run("multi word segments camel case the placeholder", func(t *testing.T) {
		res := URL(cat, "/order-items/42")

		require.Equal(t, "/order-items/{orderItemId}", res.Generalized)
	})

	t.Run("query values generalize but keep key value pairs", func(t *testing.T) {
		res := URL(cat, "/search?user_id=123456&q=hello")

		require.Equal(t, "/search?user_id={userId}&q=hello", res.Generalized)
		require.Len(t, res.Patterns, 1)
		require.Equal(t, "query parameter", res.Patterns[0].Description)
	})

	t.Run("literal paths pass through", func(t *testing.T) {
		res := URL(cat, "/health/live")

		require.Equal(t, "/health/live", res.Generalized)
		require.Empty(t, res.Patterns)
	})

	t.Run("already templated urls are stable", func(t *testing.T) {
		res := URL(cat, "/users/{userId}/orders/{orderId}")

		require.Equal(t, "/users/{userId}/orders/{orderId}", res.Generalized)
		require.Empty(t, res.Patterns)
	})

	t.Run("fragments and userinfo survive the rewrite", func(t *testing.T) {
		res := URL(cat, "/articles/123456#comments")
		require.Equal(t, "/articles/{articleId}#comments", res.Generalized)

		res = URL(cat, "https://deploy@ci.example.com/builds/42")
		require.Equal(t, "https://deploy@ci.example.com/builds/{buildId}", res.Generalized)
	})

	t.Run("repeated hints get distinct placeholder names", func(t *testing.T) {
		res := URL(cat, "/users/1/2")

		require.Equal(t, "/users/{userId}/{userId2}", res.Generalized)
		require.Len(t, res.Patterns, 2)
		require.Equal(t, "{userId2}", res.Patterns[1].GeneralizedValue)
	})

	t.Run("empty url generalizes to itself", func(t *testing.T) {
		res := URL(cat, "")

		require.Equal(t, "", res.Generalized)
		require.Empty(t, res.Patterns)
		require.Empty(t, res.SensitiveMatches)
	})
}
