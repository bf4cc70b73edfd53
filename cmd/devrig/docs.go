package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/devrig/devrig/pkg/style"
)

//go:embed docs/guide.md
var guideMarkdown string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the provisioning guide",
	Long:  `Render the devrig guide: what each step does and how to customize the manifest.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(guideMarkdown))
	},
}

// renderMarkdown pretty-prints markdown for a terminal, falling back
// to the raw text when rendering is unavailable.
func renderMarkdown(content string) string {
	if !style.IsTTY(os.Stdout) {
		return content
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
