package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	sdkschema "github.com/reoring/sdkschema"
	"github.com/reoring/sdkschema/internal/catalog"
	"github.com/reoring/sdkschema/source"
)

type direction int

const (
	mapDirection direction = iota
	unmapDirection
)

// result is the outcome of one input. Exactly one of out and issues is set.
type result struct {
	name   string
	out    []byte
	issues sdkschema.Issues
}

type convertOpts struct {
	opt    sdkschema.ValidateOpt
	xml    bool
	format string
}

func newConvertCmd(v *viper.Viper, d direction) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map <model> [file...]",
		Short: "Validate wire payloads and print their domain values",
		Args:  cobra.MinimumNArgs(1),
	}
	if d == unmapDirection {
		cmd.Use = "unmap <model> [file...]"
		cmd.Short = "Validate domain values and print their wire payloads"
	}
	cmd.Long = cmd.Short + `.

Inputs are read from the given files, or from stdin when none (or "-") is
given. The input syntax follows the file extension (.json, .yaml/.yml, .xml);
--xml forces XML input for map and XML output for unmap.`

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		e, err := lookupModel(args[0])
		if err != nil {
			return err
		}
		format, err := outputFormat(v)
		if err != nil {
			return err
		}
		co := convertOpts{
			opt:    sdkschema.ValidateOpt{Strict: v.GetBool("strict")},
			xml:    v.GetBool("xml"),
			format: format,
		}

		files := args[1:]
		if len(files) == 0 {
			files = []string{stdinName}
		}
		results := make([]result, len(files))

		grp, ctx := errgroup.WithContext(cmd.Context())
		grp.SetLimit(max(1, v.GetInt("jobs")))
		stdin := cmd.InOrStdin()
		for i, name := range files {
			grp.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				data, err := readInput(name, stdin)
				if err != nil {
					return err
				}
				r, err := convert(e, d, name, data, co)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				results[i] = r
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		failed := 0
		for _, r := range results {
			if len(r.issues) > 0 {
				failed++
				for _, it := range r.issues {
					fmt.Fprintf(w, "%s: %s at %s: %s\n", r.name, it.Code, it.Pointer(), headline(it.Message))
				}
				continue
			}
			if err := writeLine(w, r.out); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d input(s) failed validation", failed, len(results))
		}
		return nil
	}
	return cmd
}

func convert(e catalog.Entry, d direction, name string, data []byte, co convertOpts) (result, error) {
	r := result{name: name}
	kind := inputKind(name, co.xml && d == mapDirection)

	var out any
	var err error
	switch {
	case d == mapDirection && kind == formatXML:
		var root string
		var in any
		root, in, err = source.DecodeXML(bytes.NewReader(data))
		if err != nil {
			return r, err
		}
		if root != e.Root {
			sdkschema.Logger().Warn("unexpected xml root element", "input", name, "got", root, "want", e.Root)
		}
		out, err = sdkschema.ValidateAndMapXML(in, e.Schema, co.opt)
	case kind == formatXML:
		return r, errors.New("unmap reads json or yaml domain values")
	default:
		var in any
		in, err = decode(kind, data)
		if err != nil {
			return r, err
		}
		if d == mapDirection {
			out, err = sdkschema.ValidateAndMap(in, e.Schema, co.opt)
		} else if co.xml {
			out, err = sdkschema.ValidateAndUnmapXML(in, e.Schema, co.opt)
		} else {
			out, err = sdkschema.ValidateAndUnmap(in, e.Schema, co.opt)
		}
	}
	if iss, ok := sdkschema.AsIssues(err); ok {
		r.issues = iss
		return r, nil
	}
	if err != nil {
		return r, err
	}
	sdkschema.Logger().Debug("converted", "input", name, "model", e.Name)

	if d == unmapDirection && co.xml {
		var buf bytes.Buffer
		err = source.EncodeXML(&buf, e.Root, out)
		r.out = buf.Bytes()
		return r, err
	}
	r.out, err = encode(co.format, out)
	return r, err
}

// headline is the first line of an issue message.
func headline(msg string) string {
	first, _, _ := strings.Cut(msg, "\n")
	return first
}
