package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kubishi/ovp"
	"github.com/kubishi/ovp/internal/render"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// print writes v in the selected format. text renders the text format.
func (o *options) print(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	out := cmd.OutOrStdout()
	switch o.output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(out)
	}
}

func writeSelection(w io.Writer, sel ovp.Selection) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range ovp.Fields() {
		if v := sel.Get(f); v != "" {
			fmt.Fprintf(tw, "%s\t%s\n", f, v)
		}
	}
	return tw.Flush()
}

func writeSentence(w io.Writer, s ovp.Sentence) error {
	fmt.Fprintln(w, s.Text())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range s {
		glosses := make([]string, len(p.Parts))
		for i, part := range p.Parts {
			glosses[i] = fmt.Sprintf("%s (%s)", part.Text, part.Gloss)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Role, p.Text, strings.Join(glosses, " + "))
	}
	return tw.Flush()
}

func writeChoices(w io.Writer, choices map[string]render.FormattedChoice) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range ovp.Fields() {
		c := choices[f.String()]
		value := "-"
		if c.Value != nil {
			value = *c.Value
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d options\n", f, c.Requirement, value, len(c.Choices))
	}
	return tw.Flush()
}

func writeStructure(w io.Writer, parts []ovp.StructurePart) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range parts {
		var attrs []string
		for _, kv := range [][2]string{
			{"positional", p.Positional},
			{"agent_nominalizer", p.AgentNominalizer},
			{"possessive", p.Possessive},
			{"tense", p.Tense},
		} {
			if kv[1] != "" {
				attrs = append(attrs, kv[0]+"="+kv[1])
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.PartOfSpeech, p.Word, strings.Join(attrs, " "))
	}
	return tw.Flush()
}
