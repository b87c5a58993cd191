package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"enigmaCrackerBackend/internal/adapter/competition"
	"enigmaCrackerBackend/internal/adapter/db"
	"enigmaCrackerBackend/internal/core/algorithm"
	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/core/session"
	"enigmaCrackerBackend/internal/port"
	"enigmaCrackerBackend/internal/utils/random"
)

type crackOptions struct {
	level       string
	code        string
	full        bool
	wordlist    string
	agents      int
	missionSize int64
	timeout     time.Duration
	competitors int
}

func newCrackCommand(a *app) *cobra.Command {
	var opts crackOptions

	cmd := &cobra.Command{
		Use:   "crack CIPHERTEXT",
		Short: "Find the code a ciphertext was encrypted with",
		Long: `Crack tries every candidate code of the search space until the decryption
is accepted by the dictionary. The level picks both the space around --code
and how strictly the dictionary must match: easy searches the start positions
only, medium also every reflector, hard also every order of the rotors.
With --competitors the same ciphertext is raced by several independent
searchers and only the first find counts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.crack(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.level, "level", "l", "easy", "task level: easy, medium or hard")
	flags.StringVarP(&opts.code, "code", "c", "", "code whose rotors and reflector the level's space is built around")
	flags.BoolVar(&opts.full, "full", false, "search every rotor order and reflector of the machine")
	flags.StringVarP(&opts.wordlist, "wordlist", "w", "", "wordlist file to use instead of the machine's dictionary")
	flags.IntVarP(&opts.agents, "agents", "a", 0, "concurrent agents (default from the machine file or config)")
	flags.Int64Var(&opts.missionSize, "mission-size", 0, "candidates per mission (default from config)")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 0, "give up after this long (default from config)")
	flags.IntVar(&opts.competitors, "competitors", 1, "independent searchers racing on the ciphertext")
	return cmd
}

func (a *app) crack(cmd *cobra.Command, ciphertext string, opts crackOptions) error {
	level, err := domain.ParseTaskLevel(opts.level)
	if err != nil {
		return err
	}
	if opts.code == "" && !opts.full {
		return fmt.Errorf("crack: --code is required unless --full is set")
	}
	if opts.competitors < 1 {
		return fmt.Errorf("crack: --competitors must be at least 1")
	}

	template, err := a.template(opts.code)
	if err != nil {
		return err
	}
	dict, err := a.dictionary(opts.wordlist)
	if err != nil {
		return err
	}

	req := port.CrackRequest{
		Task:        domain.SearchTask{Ciphertext: ciphertext, Level: level},
		Template:    template,
		Dictionary:  dict,
		Agents:      opts.agents,
		MissionSize: opts.missionSize,
		Timeout:     opts.timeout,
	}
	if req.Agents == 0 {
		req.Agents = a.machine.Agents
	}
	if opts.full {
		space := algorithm.FullSpace(a.machine.Catalog)
		req.Task.Space = &space
	}

	svc, release, err := a.newService(db.NewMemoryRepository())
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if opts.competitors == 1 {
		result, err := svc.Crack(ctx, req)
		if err != nil {
			return err
		}
		printResult(cmd, "", result)
		return nil
	}
	return a.compete(ctx, cmd, svc, req, opts.competitors)
}

// compete races n searchers over the same request through a coordinator.
func (a *app) compete(ctx context.Context, cmd *cobra.Command, svc port.CrackingService, req port.CrackRequest, n int) error {
	coordinator := competition.NewCoordinator(a.logger)
	results := make([]*domain.CrackResult, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("team-%d", i+1)
		pctx, notifier := coordinator.Join(ctx, name)
		r := req
		r.Template = req.Template.Clone()
		r.Notifier = notifier

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer coordinator.Leave(name)
			results[i], errs[i] = svc.Crack(pctx, r)
		}(i)
	}
	wg.Wait()

	for i := range results {
		name := fmt.Sprintf("team-%d", i+1)
		if errs[i] != nil {
			return fmt.Errorf("%s: %w", name, errs[i])
		}
		printResult(cmd, name, results[i])
	}

	if event, winner, ok := coordinator.Winner(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Winner: %s with %s\n", winner, event.Code)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Winner: none")
	}
	return nil
}

// template opens the session the search space is built around. With no code
// a random one stands in, which only matters for --full where it is unused.
func (a *app) template(code string) (*session.Session, error) {
	if code != "" {
		return session.FromCode(a.machine.Catalog, code)
	}
	sess := session.New(a.machine.Catalog)
	if err := sess.SetCode(session.RandomCode(a.machine.Catalog, random.New(0))); err != nil {
		return nil, err
	}
	return sess, nil
}

func (a *app) dictionary(path string) (*algorithm.Dictionary, error) {
	if path == "" {
		if a.machine.Dictionary == nil {
			return nil, fmt.Errorf("crack: the machine has no dictionary, use --wordlist: %w", domain.ErrEmptyDictionary)
		}
		return a.machine.Dictionary, nil
	}

	excluded := ""
	if d := a.machine.Definition.Decipher; d != nil {
		excluded = d.Dictionary.Excluded
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("crack: %w", err)
	}
	defer f.Close()
	return algorithm.LoadWordlist(f, excluded, algorithm.WithCaseFolding(algorithm.FoldsCase(a.machine.Definition.Alphabet)))
}

func printResult(cmd *cobra.Command, name string, result *domain.CrackResult) {
	out := cmd.OutOrStdout()
	if name != "" {
		fmt.Fprintf(out, "%s:\n", name)
	}
	fmt.Fprintf(out, "Outcome:    %s\n", result.Outcome)
	if result.Found() {
		fmt.Fprintf(out, "Code:       %s\n", result.Code)
		fmt.Fprintf(out, "Plaintext:  %s\n", result.Plaintext)
	}
	fmt.Fprintf(out, "Candidates: %d\n", result.Candidates)
	fmt.Fprintf(out, "Attempts:   %d\n", result.Attempts)
	fmt.Fprintf(out, "Time:       %s\n", result.TimeTaken.Round(time.Millisecond))
}
