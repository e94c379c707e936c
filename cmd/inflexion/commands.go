package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cours-de-latin/inflexion"
	"github.com/cours-de-latin/inflexion/internal/config"
	"github.com/cours-de-latin/inflexion/internal/logging"
)

// app is what PersistentPreRunE prepares for the subcommands.
type app struct {
	cfg *config.Config
	log *zap.Logger
	env *inflexion.Environment
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "inflexion",
		Short: "Inflect English nouns, numbers and articles",
		Long: `inflexion renders templates written in the inflection markup and
inflects single words.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (INFLEXION_* prefix)
3. Config file (--config, ./inflexion.yaml or ~/.config/inflexion/inflexion.yaml)
4. Default values

Examples:
  inflexion render '<#e:$1> <N:$2>' 3 child      # three children
  inflexion render '<#a:$n> <N:outcomes>' --set n=1
  inflexion noun formula --format yaml
  inflexion number 21 --form ordinal --long      # twenty-first
  inflexion article hour                         # an hour`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	config.DefineFlags(root.PersistentFlags())

	root.AddCommand(
		newRenderCmd(a),
		newNounCmd(a),
		newNumberCmd(),
		newArticleCmd(),
		newStatsCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.Log.Level == "info" && !cmd.Flags().Changed("log-level") {
		// keep command output clean unless asked
		cfg.Log.Level = "warn"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.NewWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

// environment loads the noun data on first use; number and article
// commands never need it.
func (a *app) environment() (*inflexion.Environment, error) {
	if a.env != nil {
		return a.env, nil
	}
	opts := []inflexion.Option{inflexion.WithLogger(a.log)}
	for _, path := range a.cfg.Data.UserNouns {
		opts = append(opts, inflexion.WithUserNouns(path))
	}
	env, err := inflexion.New(a.cfg.Data.Dir, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load inflection data")
	}
	a.env = env
	return env, nil
}

// parseValue binds integers as int so numeric directives accept them.
func parseValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

func newRenderCmd(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "render <template> [args...]",
		Short: "Render a template",
		Long: `Render a template. Extra arguments are bound to $1, $2 and so on;
--set binds a named variable. Integer values are bound as numbers.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings := make(map[string]any, len(args)-1+len(sets))
			for i, arg := range args[1:] {
				bindings[strconv.Itoa(i+1)] = parseValue(arg)
			}
			for _, s := range sets {
				name, value, ok := strings.Cut(s, "=")
				if !ok || name == "" {
					return errors.Newf("--set %q: want name=value", s)
				}
				bindings[name] = parseValue(value)
			}

			env, err := a.environment()
			if err != nil {
				return err
			}
			tmpl, err := env.Compile(args[0])
			if err != nil {
				return err
			}
			out, err := tmpl.Execute(bindings)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "bind a variable, name=value (repeatable)")
	return cmd
}

func newNounCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "noun <word>...",
		Short: "Show the singular and plural forms of nouns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.environment()
			if err != nil {
				return err
			}
			forms := make([]inflexion.Inflection, 0, len(args))
			for _, word := range args {
				forms = append(forms, env.Noun(word).Forms())
			}
			if format == "text" {
				w := cmd.OutOrStdout()
				for _, f := range forms {
					fmt.Fprintf(w, "%s: %s / %s", f.Word, f.Singular, f.Plural)
					if f.Classical != f.Plural {
						fmt.Fprintf(w, " (classical %s)", f.Classical)
					}
					fmt.Fprintf(w, " [%s]\n", f.Rule)
				}
				return nil
			}
			return writeFormatted(cmd.OutOrStdout(), format, forms)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, yaml")
	return cmd
}

func newNumberCmd() *cobra.Command {
	var (
		form                 string
		long, classic, atEnd bool
	)
	cmd := &cobra.Command{
		Use:   "number <n>",
		Short: "Spell out or reformat an integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Newf("%q is not an integer", args[0])
			}
			var out string
			switch form {
			case "cardinal":
				out, err = inflexion.Cardinal(n)
			case "ordinal":
				out, err = inflexion.Ordinal(n, long)
			case "roman":
				out = inflexion.Roman(n, classic)
			case "summary":
				out = inflexion.Summarize(n, atEnd)
			case "commas":
				out = inflexion.Commas(n)
			default:
				return errors.Newf("unknown form %q (cardinal, ordinal, roman, summary, commas)", form)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&form, "form", "cardinal", "cardinal, ordinal, roman, summary or commas")
	cmd.Flags().BoolVar(&long, "long", false, "spell ordinals below one hundred in words")
	cmd.Flags().BoolVar(&classic, "classic", false, "additive roman numerals (IIII)")
	cmd.Flags().BoolVar(&atEnd, "at-end", false, "summary forms that can end a sentence")
	return cmd
}

func newArticleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "article <phrase>...",
		Short: "Prefix a phrase with a or an",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase := strings.Join(args, " ")
			_, err := fmt.Fprintln(cmd.OutOrStdout(), inflexion.PickIndefinite(phrase)+" "+phrase)
			return err
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the size of the noun database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.environment()
			if err != nil {
				return err
			}
			return writeFormatted(cmd.OutOrStdout(), format, env.Nouns().Stats())
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: json, yaml")
	return cmd
}

func writeFormatted(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Newf("unknown format %q", format)
	}
}
