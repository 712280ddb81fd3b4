package analyze

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harsight/harsight-go/internal/infer"
	"github.com/harsight/harsight-go/internal/interaction"
	"github.com/harsight/harsight-go/internal/pattern"
)

func newCatalogue(t *testing.T) *pattern.Catalogue {
	t.Helper()
	cat, err := pattern.NewCatalogue()
	require.NoError(t, err)
	return cat
}

func sampleInteraction() *interaction.Interaction {
	return &interaction.Interaction{
		ID: "inter-1",
		Request: &interaction.Request{
			Method: "POST",
			URL:    "/users/123456/orders",
			Headers: map[string][]string{
				"Authorization": {"Bearer sk-abc123"},
				"Content-Type":  {"application/json"},
			},
			Body: map[string]any{
				"email":    "a@b.com",
				"password": "hunter22",
			},
		},
		Response: &interaction.Response{
			Status:  201,
			Headers: map[string][]string{"Content-Type": {"application/json"}},
			Body: map[string]any{
				"id":      float64(789123),
				"created": "2024-03-05T10:11:12Z",
			},
		},
	}
}

func Test_Process(t *testing.T) {
	cat := newCatalogue(t)

	t.Run("assembles both sides without errors", func(t *testing.T) {
		report, errs := Process(cat, sampleInteraction(), 0)

		require.Empty(t, errs)
		require.NotNil(t, report.RequestAnalysis)
		require.NotNil(t, report.ResponseAnalysis)
		require.Equal(t, 201, report.ResponseAnalysis.Status)
		require.Equal(t, "/users/{userId}/orders", report.RequestAnalysis.URLAnalysis.Generalized)
	})

	t.Run("url suggestions carry the original and suggested form", func(t *testing.T) {
		report, _ := Process(cat, sampleInteraction(), 0)

		var urlSuggestion *Suggestion
		for i := range report.GeneralizationSuggestions {
			if report.GeneralizationSuggestions[i].Type == SuggestionURLParameterization {
				urlSuggestion = &report.GeneralizationSuggestions[i]
			}
		}
		require.NotNil(t, urlSuggestion)
		require.Equal(t, "/users/123456/orders", urlSuggestion.OriginalURL)
		require.Equal(t, "/users/{userId}/orders", urlSuggestion.SuggestedURL)
		require.NotEmpty(t, urlSuggestion.PatternsFound)
	})

	t.Run("body suggestions and inferred types per side", func(t *testing.T) {
		report, _ := Process(cat, sampleInteraction(), 0)

		reqTypes := report.RequestAnalysis.InferredTypes
		require.Equal(t, "email", reqTypes.Properties["email"].Format)
		require.ElementsMatch(t, []string{"email", "password"}, reqTypes.Required)

		respTypes := report.ResponseAnalysis.InferredTypes
		require.Equal(t, "date-time", respTypes.Properties["created"].Format)

		var bodySuggestions int
		for _, s := range report.GeneralizationSuggestions {
			if s.Type == SuggestionBodyGeneralization {
				bodySuggestions++
			}
		}
		require.Equal(t, 2, bodySuggestions)
	})

	t.Run("security concerns aggregate by category with field names only", func(t *testing.T) {
		report, _ := Process(cat, sampleInteraction(), 0)

		byType := map[pattern.SensitiveType]Concern{}
		for _, c := range report.SecurityConcerns {
			byType[c.Type] = c
		}

		password, ok := byType[pattern.SensitivePassword]
		require.True(t, ok)
		require.Equal(t, "high", password.Severity)
		require.Equal(t, 1, password.Count)
		require.Equal(t, []string{"body"}, password.Locations)
		require.Equal(t, []string{"password"}, password.Examples)
		require.NotEmpty(t, password.Recommendation)

		bearer, ok := byType[pattern.SensitiveBearerToken]
		require.True(t, ok)
		require.Equal(t, "medium", bearer.Severity)
		require.Equal(t, []string{"header"}, bearer.Locations)

		// high severity concerns sort first
		require.Equal(t, pattern.SensitivePassword, report.SecurityConcerns[0].Type)
	})

	t.Run("concern examples never include captured values", func(t *testing.T) {
		report, _ := Process(cat, sampleInteraction(), 0)

		for _, c := range report.SecurityConcerns {
			require.NotContains(t, c.Examples, "hunter22")
			require.NotContains(t, c.Examples, "Bearer sk-abc123")
		}
	})

	t.Run("sensitive query params are url concerns", func(t *testing.T) {
		inter := &interaction.Interaction{
			Request: &interaction.Request{
				URL:         "/search",
				QueryParams: map[string]string{"api_key": "sk-live-abcdef12"},
			},
		}
		report, errs := Process(cat, inter, 0)

		require.Empty(t, errs)
		require.Len(t, report.SecurityConcerns, 1)
		require.Equal(t, pattern.SensitiveAPIKey, report.SecurityConcerns[0].Type)
		require.Equal(t, []string{"url"}, report.SecurityConcerns[0].Locations)
	})

	t.Run("malformed json body degrades with an error entry", func(t *testing.T) {
		body, note, decodeErr := interaction.DecodeBody([]byte("not json at all"), "application/json")
		require.Error(t, decodeErr)

		inter := &interaction.Interaction{
			Request: &interaction.Request{URL: "/ingest", Body: body, BodyNote: note},
		}
		report, errs := Process(cat, inter, 0)

		require.Len(t, errs, 1)
		require.ErrorIs(t, errs[0], interaction.ErrMalformedBody)
		require.Equal(t, "request.body", errs[0].Stage)
		require.Equal(t, "unknown", report.RequestAnalysis.InferredTypes.Format)
	})

	t.Run("binary bodies record a low confidence opaque pattern", func(t *testing.T) {
		body, note, decodeErr := interaction.DecodeBody([]byte{0xff, 0xfe}, "application/octet-stream")
		require.Error(t, decodeErr)

		inter := &interaction.Interaction{
			Response: &interaction.Response{Status: 200, Body: body, BodyNote: note},
		}
		report, errs := Process(cat, inter, 0)

		require.Len(t, errs, 1)
		require.ErrorIs(t, errs[0], interaction.ErrUnsupportedEncoding)

		analysis := report.ResponseAnalysis.BodyAnalysis
		require.Len(t, analysis.Patterns, 1)
		require.Equal(t, pattern.TypeOpaque, analysis.Patterns[0].Type)
		require.Less(t, analysis.Patterns[0].Confidence, 0.6)
		require.Nil(t, report.ResponseAnalysis.InferredTypes)
	})

	t.Run("nil interaction produces an empty report", func(t *testing.T) {
		report, errs := Process(cat, nil, 0)

		require.Empty(t, errs)
		require.Nil(t, report.RequestAnalysis)
		require.Nil(t, report.ResponseAnalysis)
		require.Empty(t, report.SecurityConcerns)
	})

	t.Run("generalization and inference honor the same depth bound", func(t *testing.T) {
		inter := &interaction.Interaction{
			Request: &interaction.Request{
				Method: "POST",
				URL:    "/things",
				Body: map[string]any{
					"a": map[string]any{
						"b": map[string]any{"email": "deep@example.com"},
					},
				},
			},
		}

		report, errs := Process(cat, inter, 2)
		require.Empty(t, errs)

		side := report.RequestAnalysis
		// The email sits past the bound: neither walk may reach it.
		require.Empty(t, side.BodyAnalysis.Patterns)
		require.Equal(t, inter.Request.Body, side.BodyAnalysis.Generalized)

		inner := side.InferredTypes.Properties["a"].Properties["b"]
		require.Equal(t, infer.KindString, inner.Kind)
		require.Empty(t, inner.Format)
		require.Nil(t, inner.Properties)
	})
}
