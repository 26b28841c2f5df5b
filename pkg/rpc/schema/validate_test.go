package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateObject(t *testing.T) {
	t.Parallel()

	s := Object(
		F("name", String()),
		F("age", Int()),
		Opt("nick", String()),
	)

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, s.ValidateJSON([]byte(`{"name":"alice","age":30}`)))
	})

	t.Run("optional field may be present", func(t *testing.T) {
		require.NoError(t, s.ValidateJSON([]byte(`{"name":"alice","age":30,"nick":"al"}`)))
	})

	t.Run("missing required field", func(t *testing.T) {
		err := s.ValidateJSON([]byte(`{"age":30}`))
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "name", verr.Path)
	})

	t.Run("null counts as missing", func(t *testing.T) {
		require.Error(t, s.ValidateJSON([]byte(`{"name":null,"age":30}`)))
	})

	t.Run("wrong kind", func(t *testing.T) {
		err := s.ValidateJSON([]byte(`{"name":42,"age":30}`))
		require.ErrorContains(t, err, "expected string")
	})

	t.Run("extra fields are allowed", func(t *testing.T) {
		require.NoError(t, s.ValidateJSON([]byte(`{"name":"alice","age":30,"extra":true}`)))
	})

	t.Run("not an object", func(t *testing.T) {
		require.ErrorContains(t, s.ValidateJSON([]byte(`[1,2]`)), "expected object")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		require.ErrorContains(t, s.ValidateJSON([]byte(`{`)), "invalid JSON")
	})
}

func TestValidateInt(t *testing.T) {
	t.Parallel()

	s := Object(F("n", Int()))

	require.NoError(t, s.ValidateJSON([]byte(`{"n":7}`)))
	require.NoError(t, s.ValidateJSON([]byte(`{"n":-7}`)))
	require.ErrorContains(t, s.ValidateJSON([]byte(`{"n":7.5}`)), "fractional")
	require.ErrorContains(t, s.ValidateJSON([]byte(`{"n":"7"}`)), "expected integer")
}

func TestValidateNested(t *testing.T) {
	t.Parallel()

	s := Object(
		F("items", Array(Object(
			F("id", String()),
			F("lastModified", DateTime()),
		)).Min(1)),
	)

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, s.ValidateJSON([]byte(
			`{"items":[{"id":"a","lastModified":"2024-05-01T10:00:00Z"}]}`)))
	})

	t.Run("too few items", func(t *testing.T) {
		require.ErrorContains(t, s.ValidateJSON([]byte(`{"items":[]}`)), "at least 1")
	})

	t.Run("nested violation carries path", func(t *testing.T) {
		err := s.ValidateJSON([]byte(
			`{"items":[{"id":"a","lastModified":"2024-05-01T10:00:00Z"},{"id":"b","lastModified":"not-a-time"}]}`))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "items[1].lastModified", verr.Path)
	})
}

func TestValidateFormats(t *testing.T) {
	t.Parallel()

	email := Object(F("email", Email()))
	require.NoError(t, email.ValidateJSON([]byte(`{"email":"a@example.com"}`)))
	require.ErrorContains(t, email.ValidateJSON([]byte(`{"email":"nope"}`)), "email")

	id := Object(F("id", UUID()))
	require.NoError(t, id.ValidateJSON([]byte(`{"id":"6f1f4a2e-9d6b-4a2f-8f3a-1c2d3e4f5a6b"}`)))
	require.ErrorContains(t, id.ValidateJSON([]byte(`{"id":"not-a-uuid"}`)), "UUID")

	ts := Object(F("at", DateTime()))
	require.NoError(t, ts.ValidateJSON([]byte(`{"at":"2024-05-01T10:00:00+02:00"}`)))
	require.Error(t, ts.ValidateJSON([]byte(`{"at":"May 1st"}`)))
}

func TestValidateScalars(t *testing.T) {
	t.Parallel()

	require.NoError(t, Object(F("ok", Bool())).ValidateJSON([]byte(`{"ok":true}`)))
	require.Error(t, Object(F("ok", Bool())).ValidateJSON([]byte(`{"ok":"true"}`)))

	require.NoError(t, Object(F("ratio", Float())).ValidateJSON([]byte(`{"ratio":0.5}`)))
	require.Error(t, Object(F("ratio", Float())).ValidateJSON([]byte(`{"ratio":null}`)))
}
