package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"enigmaCrackerBackend/internal/core/session"
	"enigmaCrackerBackend/internal/utils/random"
)

func newEncryptCommand(a *app) *cobra.Command {
	var (
		code  string
		seed  int64
		stats bool
	)

	cmd := &cobra.Command{
		Use:     "encrypt [message...]",
		Aliases: []string{"decrypt"},
		Short:   "Encrypt or decrypt messages",
		Long: `Encrypt runs each message through the machine in turn, so the rotors keep
stepping from one message to the next. Encryption and decryption are the same
operation. Without arguments the messages are read from stdin, one per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := session.New(a.machine.Catalog)
			if code != "" {
				var err error
				if sess, err = session.FromCode(a.machine.Catalog, code); err != nil {
					return err
				}
			} else if err := sess.SetCode(session.RandomCode(a.machine.Catalog, random.New(seed))); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Code: %s\n", sess.InitialCode())

			messages := args
			if len(messages) == 0 {
				var err error
				if messages, err = readMessages(cmd); err != nil {
					return err
				}
			}

			for _, msg := range messages {
				out, err := sess.Encrypt(msg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}

			if stats {
				for _, rec := range sess.Statistics() {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d messages\n", rec.Code, rec.Count())
					for _, e := range rec.Entries {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s -> %s (%s)\n", e.Input, e.Output, e.Elapsed)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&code, "code", "c", "", "the code to set, e.g. <1,2,3><A,B,C><I> (default is a random code)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the random code (0 seeds from the clock)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print the session statistics to stderr")
	return cmd
}

// readMessages reads one message per line, prompting when stdin is a
// terminal.
func readMessages(cmd *cobra.Command) ([]string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Enter the messages, one per line, end with Ctrl-D: ")
	}

	var messages []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			messages = append(messages, line)
		}
	}
	return messages, scanner.Err()
}
