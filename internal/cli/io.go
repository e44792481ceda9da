package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/reoring/sdkschema/source"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatXML  = "xml"

	stdinName = "-"
)

func outputFormat(v *viper.Viper) (string, error) {
	switch f := strings.ToLower(v.GetString("format")); f {
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported --format %q (json or yaml)", f)
	}
}

// inputKind picks the syntax of an input from its extension.
func inputKind(name string, forceXML bool) string {
	if forceXML {
		return formatXML
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".xml":
		return formatXML
	default:
		return formatJSON
	}
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == stdinName {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

func decode(kind string, data []byte) (any, error) {
	if kind == formatYAML {
		return source.DecodeYAML(data)
	}
	return source.DecodeJSON(data)
}

func encode(format string, v any) ([]byte, error) {
	if format == formatYAML {
		return source.EncodeYAML(v)
	}
	return source.EncodeJSONIndent(v)
}

func writeLine(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return err
	}
	if len(b) == 0 || b[len(b)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
