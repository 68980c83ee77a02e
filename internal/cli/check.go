package cli

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"bzl/internal/tools"
)

var checkStrict bool

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check external tool availability",
		RunE:  runCheck,
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when required tools are missing")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faint := lipgloss.NewStyle().Faint(true)

	statuses := tools.Detect(st.endpoint != nil)
	for _, s := range statuses {
		if s.Satisfied {
			cmd.Println(green.Render("✓") + " " + bold.Render(s.Tool))
			cmd.Println(faint.Render("  " + s.Path))
		} else {
			cmd.Println(red.Render("✗") + " " + bold.Render(s.Tool) + red.Render(" ("+s.Error+")"))
			for _, hint := range s.Hints {
				cmd.Println(faint.Render("  " + hint))
			}
		}
	}

	if checkStrict {
		if missing, ok := tools.Missing(statuses); ok {
			return errors.New("tool check failed: " + missing.Error)
		}
	}
	return nil
}
