package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/core/session"
)

func newSpecCommand(a *app) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Describe the loaded machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := session.New(a.machine.Catalog)
			if code != "" {
				var err error
				if sess, err = session.FromCode(a.machine.Catalog, code); err != nil {
					return err
				}
			}
			spec, err := sess.Specification()
			if err != nil {
				return err
			}
			printSpecification(cmd, spec)
			return nil
		},
	}
	cmd.Flags().StringVarP(&code, "code", "c", "", "show the machine set to this code, e.g. <1,2,3><A,B,C><I>")
	return cmd
}

func printSpecification(cmd *cobra.Command, spec domain.MachineSpecification) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Rotors in use:      %d of %d\n", spec.RotorCount, spec.AvailableRotors)
	fmt.Fprintf(out, "Reflectors:         %d\n", spec.Reflectors)
	for _, r := range spec.Rotors {
		fmt.Fprintf(out, "  rotor %d, notch %c\n", r.ID, r.Notch)
	}
	fmt.Fprintf(out, "Messages processed: %d\n", spec.MessagesProcessed)
	if spec.InitialCode != "" {
		fmt.Fprintf(out, "Initial code:       %s\n", spec.InitialCode)
		fmt.Fprintf(out, "Current code:       %s\n", spec.CurrentCode)
	}
}
