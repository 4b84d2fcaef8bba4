package fluent_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent"
	"github.com/dmitrymomot/fluent/ast"
)

func dir(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}

func TestWithResourceDir(t *testing.T) {
	t.Parallel()

	t.Run("loads json documents", func(t *testing.T) {
		t.Parallel()

		fsys := dir(map[string]string{
			"app.json": `{
				"messages": {
					"hello": {"value": ["Hello, ", {"var": "name"}, "!"]},
					"login": {"value": ["Sign in"], "attributes": {"title": ["Click to sign in"]}}
				},
				"terms": {
					"brand": {"value": ["Firefox"]}
				}
			}`,
		})

		b := mustBundle(t, fluent.WithUseIsolating(false), fluent.WithResourceDir(fsys))

		out, diags := b.FormatMessage("hello", fluent.Args{"name": fluent.String("World")})
		assert.Empty(t, diags)
		assert.Equal(t, "Hello, World!", out)

		out, _ = b.FormatAttribute("login", "title", nil)
		assert.Equal(t, "Click to sign in", out)

		_, ok := b.GetTerm("brand")
		assert.True(t, ok)
	})

	t.Run("loads yaml documents", func(t *testing.T) {
		t.Parallel()

		fsys := dir(map[string]string{
			"emails.yaml": `
messages:
  emails:
    value:
      - select:
          selector: {var: count}
          variants:
            - {key: one, value: ["One email"]}
            - {key: other, default: true, value: ["Some emails"]}
`,
		})

		b := mustBundle(t, fluent.WithUseIsolating(false), fluent.WithResourceDir(fsys))

		out, diags := b.FormatMessage("emails", fluent.Args{"count": fluent.Int(1)})
		assert.Empty(t, diags)
		assert.Equal(t, "One email", out)

		out, _ = b.FormatMessage("emails", fluent.Args{"count": fluent.Int(9)})
		assert.Equal(t, "Some emails", out)
	})

	t.Run("loads toml documents", func(t *testing.T) {
		t.Parallel()

		fsys := dir(map[string]string{
			"prices.toml": `
[messages.price]
value = [{ func = "NUMBER", args = [{ var = "n" }], opts = { maximumFractionDigits = 1 } }]
`,
		})

		b := mustBundle(t, fluent.WithUseIsolating(false), fluent.WithResourceDir(fsys))

		out, diags := b.FormatMessage("price", fluent.Args{"n": fluent.Float(2.71)})
		assert.Empty(t, diags)
		assert.Equal(t, "2.7", out)
	})

	t.Run("walks nested directories and skips foreign files", func(t *testing.T) {
		t.Parallel()

		fsys := dir(map[string]string{
			"en/app.json":    `{"messages": {"from-json": {"value": ["json"]}}}`,
			"en/extra.yml":   "messages:\n  from-yaml:\n    value: [\"yaml\"]\n",
			"notes/todo.txt": "not a resource",
		})

		b := mustBundle(t, fluent.WithResourceDir(fsys))
		assert.True(t, b.HasMessage("from-json"))
		assert.True(t, b.HasMessage("from-yaml"))
	})

	t.Run("term arguments round-trip", func(t *testing.T) {
		t.Parallel()

		fsys := dir(map[string]string{
			"brand.yaml": `
messages:
  about:
    value:
      - "Informacje o "
      - {term: thing, opts: {case: locative}}
terms:
  thing:
    value:
      - select:
          selector: {var: case}
          variants:
            - {key: nominative, default: true, value: ["Firefox"]}
            - {key: locative, value: ["Firefoxie"]}
`,
		})

		b := mustBundle(t, fluent.WithUseIsolating(false), fluent.WithResourceDir(fsys))

		out, diags := b.FormatMessage("about", nil)
		assert.Empty(t, diags)
		assert.Equal(t, "Informacje o Firefoxie", out)
	})

	t.Run("quoted numeric keys stay number keys", func(t *testing.T) {
		t.Parallel()

		fsys := dir(map[string]string{
			"score.yaml": `
messages:
  score:
    value:
      - select:
          selector: {var: n}
          variants:
            - {key: "1.0", value: ["unit"]}
            - {key: other, default: true, value: ["other"]}
`,
		})

		b := mustBundle(t, fluent.WithUseIsolating(false), fluent.WithResourceDir(fsys))

		out, diags := b.FormatMessage("score", fluent.Args{"n": fluent.Int(1)})
		assert.Empty(t, diags)
		assert.Equal(t, "unit", out)
	})

	t.Run("registration failures name the file", func(t *testing.T) {
		t.Parallel()

		fsys := dir(map[string]string{
			"a.json": `{"messages": {"m": {"value": ["first"]}}}`,
			"b.json": `{"messages": {"m": {"value": ["second"]}}}`,
		})

		_, err := fluent.NewBundle(language.English, fluent.WithResourceDir(fsys))
		require.Error(t, err)
		assert.ErrorContains(t, err, `"b.json"`)
		var oerr *fluent.OverrideError
		assert.ErrorAs(t, err, &oerr)
	})

	t.Run("parse failures name the file", func(t *testing.T) {
		t.Parallel()

		fsys := dir(map[string]string{"bad.json": `{"messages": {`})

		_, err := fluent.NewBundle(language.English, fluent.WithResourceDir(fsys))
		require.Error(t, err)
		assert.ErrorContains(t, err, `"bad.json"`)
		assert.ErrorIs(t, err, fluent.ErrInvalidResource)
	})
}

func TestDecodeResource(t *testing.T) {
	t.Parallel()

	t.Run("entries decode in sorted order", func(t *testing.T) {
		t.Parallel()

		res, err := fluent.DecodeResource([]byte(`{
			"messages": {"zebra": {"value": ["z"]}, "aardvark": {"value": ["a"]}},
			"terms": {"brand": {"value": ["b"]}}
		}`), "json")
		require.NoError(t, err)
		require.Len(t, res.Entries, 3)

		first, ok := res.Entries[0].(*ast.Message)
		require.True(t, ok)
		assert.Equal(t, "aardvark", first.ID)

		second, ok := res.Entries[1].(*ast.Message)
		require.True(t, ok)
		assert.Equal(t, "zebra", second.ID)

		third, ok := res.Entries[2].(*ast.Term)
		require.True(t, ok)
		assert.Equal(t, "brand", third.ID)
	})

	t.Run("format names are case-insensitive", func(t *testing.T) {
		t.Parallel()

		_, err := fluent.DecodeResource([]byte(`{"messages": {"m": {"value": ["x"]}}}`), "JSON")
		assert.NoError(t, err)
	})

	t.Run("rejects unsupported formats", func(t *testing.T) {
		t.Parallel()

		_, err := fluent.DecodeResource([]byte("<xml/>"), "xml")
		assert.ErrorIs(t, err, fluent.ErrInvalidResource)
		assert.ErrorContains(t, err, "unsupported format")
	})

	t.Run("rejects malformed syntax", func(t *testing.T) {
		t.Parallel()

		_, err := fluent.DecodeResource([]byte(`{"messages": {`), "json")
		assert.ErrorIs(t, err, fluent.ErrInvalidResource)
	})

	t.Run("rejects non-text non-map elements", func(t *testing.T) {
		t.Parallel()

		_, err := fluent.DecodeResource([]byte(`{"messages": {"m": {"value": [42]}}}`), "json")
		assert.ErrorIs(t, err, fluent.ErrInvalidResource)
		assert.ErrorContains(t, err, "element 0")
	})

	t.Run("rejects unknown placeable shapes", func(t *testing.T) {
		t.Parallel()

		_, err := fluent.DecodeResource([]byte(`{"messages": {"m": {"value": [{"bogus": 1}]}}}`), "json")
		assert.ErrorIs(t, err, fluent.ErrInvalidResource)
		assert.ErrorContains(t, err, "var, str, num, msg, term, func, select")
	})

	t.Run("valueless entries keep a nil value", func(t *testing.T) {
		t.Parallel()

		res, err := fluent.DecodeResource([]byte(`{
			"messages": {"bare": {"attributes": {"title": ["T"]}}}
		}`), "json")
		require.NoError(t, err)
		require.Len(t, res.Entries, 1)

		m, ok := res.Entries[0].(*ast.Message)
		require.True(t, ok)
		assert.Nil(t, m.Value)
		require.Len(t, m.Attributes, 1)
		assert.Equal(t, "title", m.Attributes[0].ID)
	})
}
