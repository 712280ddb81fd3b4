package interaction

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_DecodeBody(t *testing.T) {
	t.Run("valid json decodes to a structured value", func(t *testing.T) {
		body, note, err := DecodeBody([]byte(`{"a": 1}`), "application/json")

		require.NoError(t, err)
		require.Empty(t, note)
		require.Equal(t, map[string]any{"a": float64(1)}, body)
	})

	t.Run("declared json that fails to parse degrades to a string", func(t *testing.T) {
		body, note, err := DecodeBody([]byte("not json at all"), "application/json")

		require.ErrorIs(t, err, ErrMalformedBody)
		require.Equal(t, BodyNoteMalformed, note)
		require.Equal(t, "not json at all", body)
	})

	t.Run("plain text under a non json content type is not an error", func(t *testing.T) {
		body, note, err := DecodeBody([]byte("hello"), "text/plain")

		require.NoError(t, err)
		require.Empty(t, note)
		require.Equal(t, "hello", body)
	})

	t.Run("non utf8 payloads become an opaque marker", func(t *testing.T) {
		body, note, err := DecodeBody([]byte{0xff, 0xfe, 0x00, 0x01}, "application/octet-stream")

		require.ErrorIs(t, err, ErrUnsupportedEncoding)
		require.Equal(t, BodyNoteBinary, note)
		require.Equal(t, OpaqueBody, body)
	})

	t.Run("json suffix content types count as json", func(t *testing.T) {
		_, note, err := DecodeBody([]byte("oops"), "application/problem+json; charset=utf-8")

		require.ErrorIs(t, err, ErrMalformedBody)
		require.Equal(t, BodyNoteMalformed, note)
	})

	t.Run("empty payloads decode to nothing", func(t *testing.T) {
		body, note, err := DecodeBody(nil, "application/json")

		require.NoError(t, err)
		require.Empty(t, note)
		require.Nil(t, body)
	})
}

func Test_Headers(t *testing.T) {
	t.Run("http headers keep repeated values", func(t *testing.T) {
		h := http.Header{}
		h.Add("Accept", "application/json")
		h.Add("Set-Cookie", "a=1")
		h.Add("Set-Cookie", "b=2")

		headers := HeadersFromHTTP(h)
		require.Len(t, headers["Set-Cookie"], 2)
	})

	t.Run("content type lookup is case insensitive", func(t *testing.T) {
		headers := map[string][]string{"content-type": {"application/json"}}
		require.Equal(t, "application/json", ContentType(headers))
		require.Equal(t, "", ContentType(nil))
	})
}
