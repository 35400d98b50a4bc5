package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"minutes/internal/config"
	"minutes/internal/formats"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	formatsCmd := &cobra.Command{
		Use:     "formats",
		Aliases: []string{"format"},
		Short:   "Browse and edit meeting-minutes formats",
	}

	formatsCmd.AddCommand(newFormatsListCommand(ctx))
	formatsCmd.AddCommand(newFormatsShowCommand(ctx))
	formatsCmd.AddCommand(newFormatsSelectCommand(ctx))
	formatsCmd.AddCommand(newFormatsAddCommand(ctx))
	formatsCmd.AddCommand(newFormatsEditCommand(ctx))
	formatsCmd.AddCommand(newFormatsRenameCommand(ctx))
	formatsCmd.AddCommand(newFormatsDeleteCommand(ctx))

	return formatsCmd
}

func newFormatsListCommand(ctx *commandContext) *cobra.Command {
	var query string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List formats, selected first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				query = args[0]
			}
			return ctx.withManager(commandCtx(cmd), func(mgr *formats.Manager) error {
				list := mgr.DisplayList(query)
				if jsonOutput {
					return writeJSON(cmd, list)
				}
				renderFormatList(cmd.OutOrStdout(), list)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show formats whose title or template contains this text")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newFormatsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one format (the selected one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(commandCtx(cmd), func(mgr *formats.Manager) error {
				var (
					d  formats.DisplayRecord
					ok bool
				)
				if len(args) == 0 {
					d, ok = mgr.Selected()
				} else {
					d, ok = mgr.Get(args[0])
				}
				if !ok {
					if len(args) == 0 {
						return errors.New("no format is selected")
					}
					return fmt.Errorf("show %q: %w", args[0], formats.ErrUnknownFormat)
				}
				if jsonOutput {
					return writeJSON(cmd, d)
				}
				renderFormat(cmd.OutOrStdout(), d)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newFormatsSelectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Select the format used for new minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx := commandCtx(cmd)
			return ctx.withManager(cctx, func(mgr *formats.Manager) error {
				if err := mgr.Select(cctx, args[0]); err != nil {
					return err
				}
				d, _ := mgr.Selected()
				fmt.Fprintf(cmd.OutOrStdout(), "Selected %s (%s)\n", d.Title, d.ID)
				return nil
			})
		},
	}
}

func newFormatsAddCommand(ctx *commandContext) *cobra.Command {
	var title string
	var template templateInput
	var selectAfter bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom format",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := template.resolve()
			if err != nil {
				return err
			}
			cctx := commandCtx(cmd)
			return ctx.withManager(cctx, func(mgr *formats.Manager) error {
				record, err := mgr.AddCustom(cctx, title, body)
				if err != nil {
					return err
				}
				if selectAfter {
					if err := mgr.Select(cctx, record.ID); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", record.Title, record.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Format title")
	template.register(cmd)
	cmd.Flags().BoolVar(&selectAfter, "select", false, "Select the new format")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newFormatsEditCommand(ctx *commandContext) *cobra.Command {
	var template templateInput

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the template of a format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !template.set(cmd) {
				return errors.New("edit: --template or --template-file is required")
			}
			body, err := template.resolve()
			if err != nil {
				return err
			}
			cctx := commandCtx(cmd)
			return ctx.withManager(cctx, func(mgr *formats.Manager) error {
				if err := mgr.EditTemplate(cctx, args[0], body); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated template of %s\n", args[0])
				return nil
			})
		},
	}

	template.register(cmd)
	return cmd
}

func newFormatsRenameCommand(ctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "rename <id>",
		Short: "Rename a custom format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx := commandCtx(cmd)
			return ctx.withManager(cctx, func(mgr *formats.Manager) error {
				if err := mgr.RenameCustom(cctx, args[0], title); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newFormatsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a custom format",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx := commandCtx(cmd)
			return ctx.withManager(cctx, func(mgr *formats.Manager) error {
				if err := mgr.Delete(cctx, args[0]); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Deleted %s\n", args[0])
				if d, ok := mgr.Selected(); ok {
					fmt.Fprintf(out, "Selected format: %s (%s)\n", d.Title, d.ID)
				}
				return nil
			})
		},
	}
}

// templateInput binds --template and --template-file.
type templateInput struct {
	text string
	file string
}

func (t *templateInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.text, "template", "", "Template text")
	cmd.Flags().StringVar(&t.file, "template-file", "", "Read the template from a file")
	cmd.MarkFlagsMutuallyExclusive("template", "template-file")
}

func (t *templateInput) set(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("template") || cmd.Flags().Changed("template-file")
}

func (t *templateInput) resolve() (string, error) {
	if strings.TrimSpace(t.file) == "" {
		return t.text, nil
	}
	path, err := config.ExpandPath(t.file)
	if err != nil {
		return "", fmt.Errorf("resolve template path: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}
