package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kubishi/ovp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// selectionFlags reads a selection from --input and --set.
type selectionFlags struct {
	sets  []string
	input string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.sets, "set", "s", nil, "Set a field, e.g. --set subject_noun=nüü (repeatable)")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Read the selection from a JSON or YAML file (- for stdin)")
}

// selection builds the selection: the --input file first, then each --set
// in order.
func (f *selectionFlags) selection(cmd *cobra.Command) (ovp.Selection, error) {
	var sel ovp.Selection
	if f.input != "" {
		data, err := readSource(cmd, f.input)
		if err != nil {
			return sel, err
		}
		if err := yaml.Unmarshal(data, &sel); err != nil {
			return sel, fmt.Errorf("parse %s: %w", f.input, err)
		}
	}
	for _, s := range f.sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return sel, fmt.Errorf("--set %q: want field=value", s)
		}
		field, ok := ovp.ParseField(strings.TrimSpace(name))
		if !ok {
			return sel, fmt.Errorf("--set %q: unknown field %q", s, name)
		}
		sel.Set(field, value)
	}
	return sel, nil
}

// readSource reads a file, or stdin for "-".
func readSource(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// parseSentences accepts {"sentences": [...]} or a bare array.
func parseSentences(data []byte) ([]ovp.SimpleSentence, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var out []ovp.SimpleSentence
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var doc struct {
		Sentences []ovp.SimpleSentence `json:"sentences"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Sentences, nil
}
