package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/ada/internal/cli"
	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/session"
)

var (
	flagAskPersonal bool
	flagAskJSON     bool
	askInputs       inputFlags
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the advisor one question",
	Long: "Ask a general question, or pass --personal (or any figure flag) to include your " +
		"monthly figures and get a projection and breakdown with the answer.",
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&flagAskPersonal, "personal", false, "Ask in personal mode")
	askCmd.Flags().BoolVar(&flagAskJSON, "json", false, "Print the result as JSON")
	askInputs.register(askCmd)
	rootCmd.AddCommand(askCmd)
}

type askResult struct {
	Mode       string                    `json:"mode"`
	Question   string                    `json:"question"`
	Answer     string                    `json:"answer"`
	Cached     bool                      `json:"cached"`
	Inputs     *model.FinancialInputs    `json:"inputs,omitempty"`
	Projection []model.ProjectionPoint   `json:"projection,omitempty"`
	Breakdown  []model.BreakdownCategory `json:"breakdown,omitempty"`
	Terminal   int64                     `json:"terminalValue,omitempty"`
}

func runAsk(_ *cobra.Command, args []string) error {
	mode := model.ModeGeneral
	if flagAskPersonal || askInputs.set() {
		mode = model.ModePersonal
	}

	s := session.New()
	if err := s.SelectMode(mode); err != nil {
		return err
	}
	if err := s.UpdateField(model.FieldQuery, strings.Join(args, " ")); err != nil {
		return err
	}
	if mode == model.ModePersonal {
		raw, err := askInputs.raw()
		if err != nil {
			return err
		}
		for _, f := range model.PersonalFields {
			v, _ := raw.Get(f)
			if err := s.UpdateField(f, v); err != nil {
				return err
			}
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	asker, backend, cleanup, err := newAsker(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ticket, err := s.Submit()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	progress("  Asking %s...\n", backend)
	resp, askErr := asker.Ask(ctx, ticket.Request)
	s.Resolve(ticket, resp.Response, askErr)

	v := s.Snapshot()
	if v.Notice != "" {
		return errors.New(v.Notice)
	}
	if resp.Cached {
		progress("  (cached answer)\n")
	}

	if flagAskJSON {
		return printAskJSON(v, resp.Cached)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ada · " + v.Mode.String()))
	fmt.Println()
	fmt.Println(v.Answer)
	fmt.Println()

	if v.Mode != model.ModePersonal {
		return nil
	}
	fmt.Print(cli.RenderTable(cli.InputsTable(v.Inputs)))
	if v.Phase != model.PhaseResults {
		fmt.Println(cli.RenderMuted("  No projection: set both --investment and --years above zero."))
		return nil
	}
	printProjection(v.Projection, v.Breakdown, v.Terminal, v.Inputs.HorizonYears)
	return nil
}

func printAskJSON(v session.View, cached bool) error {
	out := askResult{
		Mode:       v.Mode.String(),
		Question:   v.Query,
		Answer:     v.Answer,
		Cached:     cached,
		Projection: v.Projection,
		Breakdown:  v.Breakdown,
		Terminal:   v.Terminal,
	}
	if v.Mode == model.ModePersonal {
		in := v.Inputs
		out.Inputs = &in
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
