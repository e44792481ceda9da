package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	sdkschema "github.com/reoring/sdkschema"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { sdkschema.SetLogger(nil) })
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), append([]string{"sdkschema"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestList(t *testing.T) {
	out, _, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "user\tObject<{id,age,email}>\n")
	assert.Contains(t, out, "shape\tDiscriminatedUnion<type,[circle,square]>\n")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 7)
}

func TestMap(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "user.json", `{"user_id":"abc","user_age":"30"}`)

	out, _, err := run(t, "map", "user", f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","age":30}`, out)

	out, _, err = run(t, "map", "user", "--format", "yaml", f)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, map[string]any{"id": "abc", "age": 30}, doc)
}

func TestMap_Issues(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "user_id: abc\nuser_age: 30\n")
	bad := writeFile(t, dir, "bad.json", `{"user_id":"abc","user_age":"old"}`)

	out, stderr, err := run(t, "map", "user", "--jobs", "2", good, bad)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 input(s) failed validation", err.Error())
	assert.Contains(t, stderr, "Error: 1 of 2 input(s) failed validation")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, bad+": invalid_type at /user_age: Expected value to be of type 'number' but found 'string'.", lines[len(lines)-1])
	assert.Equal(t, "abc", gjson.Get(strings.Join(lines[:len(lines)-1], "\n"), "id").String())
}

func TestMap_StrictFromFlagAndEnv(t *testing.T) {
	f := writeFile(t, t.TempDir(), "user.json", `{"user_id":"abc","user_age":"30"}`)

	_, _, err := run(t, "map", "user", "--strict", f)
	require.Error(t, err)

	t.Setenv("SDKSCHEMA_STRICT", "true")
	out, _, err := run(t, "map", "user", f)
	require.Error(t, err)
	assert.Contains(t, out, "invalid_type at /user_age")
}

func TestMap_XML(t *testing.T) {
	f := writeFile(t, t.TempDir(), "book.xml",
		`<book id="b1"><title>Go</title><price>12.5</price><tag>a</tag><available>true</available></book>`)

	out, _, err := run(t, "map", "book", f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"b1","title":"Go","price":12.5,"tags":["a"],"inStock":true}`, out)
}

func TestUnmap(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "order.json", `{
		"id": "o1", "createdAt": "2024-01-01",
		"items": [{"sku": "a", "quantity": 2, "unitPrice": 1.5}],
		"note": null
	}`)

	out, _, err := run(t, "unmap", "order", f)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "o1", "created_at": "2024-01-01",
		"line_items": [{"sku": "a", "qty": 2, "unit_price": 1.5}],
		"note": null
	}`, out)

	b := writeFile(t, dir, "book.json", `{"id":"b1","title":"Go","price":12.5,"tags":["a","b"],"inStock":false}`)
	out, _, err = run(t, "unmap", "book", "--xml", b)
	require.NoError(t, err)
	assert.Equal(t, `<book id="b1"><available>false</available><price>12.5</price><tag>a</tag><tag>b</tag><title>Go</title></book>`+"\n", out)
}

func TestMap_Stdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	t.Cleanup(func() { sdkschema.SetLogger(nil) })
	cmd := NewRootCmd(viper.New(), &stderr)
	cmd.SetArgs([]string{"map", "shape", "--debug"})
	cmd.SetIn(strings.NewReader(`{"side": 3}`))
	cmd.SetOut(&stdout)

	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `{"kind":"square","side":3}`, stdout.String())
	assert.Contains(t, stderr.String(), "msg=converted")
	assert.Contains(t, stderr.String(), "model=shape")
}

func TestJSONSchema(t *testing.T) {
	out, _, err := run(t, "jsonschema", "payment")
	require.NoError(t, err)
	assert.Equal(t, "type", gjson.Get(out, "discriminator.propertyName").String())
	assert.Equal(t, "#/$defs/schema2", gjson.Get(out, "discriminator.mapping.bank").String())

	out, _, err = run(t, "jsonschema", "tree", "--format", "yaml")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "object", doc["type"])
}

func TestErrors(t *testing.T) {
	_, stderr, err := run(t, "map", "nope")
	require.Error(t, err)
	assert.Contains(t, stderr, `unknown model "nope"`)

	_, _, err = run(t, "jsonschema", "user", "--format", "toml")
	assert.ErrorContains(t, err, "unsupported --format")

	_, _, err = run(t, "map", "user", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
