package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/kubishi/ovp"
	"github.com/kubishi/ovp/internal/app"
	"github.com/kubishi/ovp/internal/render"
	"github.com/spf13/cobra"
)

// choicesResult is the output of the choices and random commands.
type choicesResult struct {
	Selection ovp.Selection                     `json:"selection" yaml:"selection"`
	Choices   map[string]render.FormattedChoice `json:"choices" yaml:"choices"`
	Missing   []string                          `json:"missing" yaml:"missing"`
	Sentence  ovp.Sentence                      `json:"sentence" yaml:"sentence"`
	Text      string                            `json:"text" yaml:"text"`
}

func newChoicesResult(lex *ovp.Lexicon, m ovp.ChoiceMap) (choicesResult, error) {
	f, err := render.NewFormatter(64)
	if err != nil {
		return choicesResult{}, err
	}
	res := choicesResult{
		Selection: m.Selection(),
		Choices:   f.Choices(m),
		Missing:   []string{},
		Sentence:  ovp.Sentence{},
	}
	for _, field := range m.Missing() {
		res.Missing = append(res.Missing, field.String())
	}
	if s, err := lex.Assemble(res.Selection); err == nil {
		res.Sentence = s
		res.Text = s.Text()
	}
	return res, nil
}

func (r choicesResult) writeText(w io.Writer) error {
	if err := writeChoices(w, r.Choices); err != nil {
		return err
	}
	if len(r.Sentence) == 0 {
		_, err := fmt.Fprintf(w, "\nincomplete, missing: %v\n", r.Missing)
		return err
	}
	fmt.Fprintln(w)
	return writeSentence(w, r.Sentence)
}

func newChoicesCmd(opts *options) *cobra.Command {
	var sf selectionFlags
	cmd := &cobra.Command{
		Use:   "choices",
		Short: "Show the valid options for every field of a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := sf.selection(cmd)
			if err != nil {
				return err
			}
			res, err := newChoicesResult(opts.lex, opts.lex.Resolve(sel))
			if err != nil {
				return err
			}
			return opts.print(cmd, res, res.writeText)
		},
	}
	sf.register(cmd)
	return cmd
}

func newSentenceCmd(opts *options) *cobra.Command {
	var sf selectionFlags
	cmd := &cobra.Command{
		Use:   "sentence",
		Short: "Assemble a complete selection into a Paiute sentence",
		Example: `  ovp sentence --set subject_noun=isha\'pugu --set subject_suffix=ii \
    --set verb=poyoha --set verb_tense=ti`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := sf.selection(cmd)
			if err != nil {
				return err
			}
			s, err := opts.lex.Assemble(sel)
			if err != nil {
				return err
			}
			return opts.print(cmd, s, func(w io.Writer) error { return writeSentence(w, s) })
		},
	}
	sf.register(cmd)
	return cmd
}

func newRandomCmd(opts *options) *cobra.Command {
	var sf selectionFlags
	var seed uint64
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Complete a selection with random values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := sf.selection(cmd)
			if err != nil {
				return err
			}
			var src ovp.Source
			if cmd.Flags().Changed("seed") {
				src = rand.New(rand.NewPCG(seed, seed))
			}
			res, err := newChoicesResult(opts.lex, opts.lex.Randomize(sel, src))
			if err != nil {
				return err
			}
			return opts.print(cmd, res, func(w io.Writer) error {
				if err := writeSelection(w, res.Selection); err != nil {
					return err
				}
				fmt.Fprintln(w)
				return writeSentence(w, res.Sentence)
			})
		},
	}
	sf.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible sentence")
	return cmd
}

func newDescribeCmd(opts *options) *cobra.Command {
	var sf selectionFlags
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe the English structure of a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := sf.selection(cmd)
			if err != nil {
				return err
			}
			parts := opts.lex.Describe(opts.lex.Resolve(sel).Selection())
			return opts.print(cmd, parts, func(w io.Writer) error { return writeStructure(w, parts) })
		},
	}
	sf.register(cmd)
	return cmd
}

// translateResult is the output of the translate command.
type translateResult struct {
	Selections []ovp.Selection `json:"selections" yaml:"selections"`
	Paiute     string          `json:"paiute" yaml:"paiute"`
}

func newTranslateCmd(opts *options) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "translate <file|->",
		Short: "Map decomposed English clauses onto Paiute sentences",
		Long: `translate reads simple clause structures as JSON, either
{"sentences": [...]} or a bare array, and prints the Paiute selections and text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			sentences, err := parseSentences(data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if len(sentences) == 0 {
				return fmt.Errorf("%s: no sentences", args[0])
			}
			var src ovp.Source
			if cmd.Flags().Changed("seed") {
				src = rand.New(rand.NewPCG(seed, seed))
			}
			sels, paiute := opts.lex.TranslateSimple(sentences, src)
			res := translateResult{Selections: sels, Paiute: paiute}
			return opts.print(cmd, res, func(w io.Writer) error {
				for i, sel := range sels {
					fmt.Fprintf(w, "# %d: %s\n", i+1, opts.lex.Render(sel))
					if err := writeSelection(w, sel); err != nil {
						return err
					}
				}
				_, err := fmt.Fprintf(w, "\n%s\n", paiute)
				return err
			})
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible pronoun choices")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
			return err
		},
	}
}
