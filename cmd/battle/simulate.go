package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/encounter"
)

var (
	simBattles  int
	simSeed     int64
	simParallel int
	simMaxTurns int
	simEvents   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Run battles from a scenario file",
	Long: `Run one or more battles between the two rosters of a scenario file.
Both sides pick a random usable move each turn. Battle i uses seed+i, so a
run with a fixed seed replays exactly.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	flags := simulateCmd.Flags()
	flags.IntVar(&simBattles, "battles", 0, "number of battles (overrides the scenario)")
	flags.Int64Var(&simSeed, "seed", 0, "base seed (overrides the scenario)")
	flags.IntVar(&simParallel, "parallel", 4, "battles run at once")
	flags.IntVar(&simMaxTurns, "max-turns", 0, "stop a battle after this many turns (overrides the scenario)")
	flags.BoolVar(&simEvents, "events", false, "print every battle event as a JSON line")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sc, err := loadScenarioFile(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		sc.Seed = &simSeed
	}
	if simBattles > 0 {
		sc.Battles = simBattles
	}
	if simMaxTurns > 0 {
		sc.MaxTurns = simMaxTurns
	}

	rt, err := newRuntime(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	var eventOut io.Writer
	if simEvents {
		eventOut = cmd.OutOrStdout()
	}
	results, err := simulate(cmd.Context(), rt.service, sc, simParallel, eventOut)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintln(out, r)
	}
	return nil
}

// battleResult summarizes one finished or abandoned battle
type battleResult struct {
	BattleID string
	Seed     int64
	Turns    int
	Outcome  battle.Outcome
	Winner   string
}

func (r *battleResult) String() string {
	line := fmt.Sprintf("%s seed=%d turns=%d outcome=%s", r.BattleID, r.Seed, r.Turns, r.Outcome)
	if r.Winner != "" {
		line += " winner=" + r.Winner
	}
	return line
}

// simulate runs every battle of the scenario, at most parallel at a time.
// Results come back in battle order.
func simulate(ctx context.Context, svc encounter.Service, sc *scenario, parallel int, eventOut io.Writer) ([]*battleResult, error) {
	if parallel < 1 {
		parallel = 1
	}
	results := make([]*battleResult, sc.Battles)
	sink := newEventSink(eventOut)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < sc.Battles; i++ {
		g.Go(func() error {
			started, err := svc.StartBattle(ctx, &encounter.StartBattleInput{
				Seed:  sc.seedFor(i),
				Sides: sc.sides(),
			})
			if err != nil {
				return errors.Wrapf(err, "battle %d failed to start", i+1)
			}
			sink.write(started.BattleID, started.Events)

			res, err := playOut(ctx, svc, started.BattleID, newRandomPolicy(started.Seed), sc.MaxTurns, sink)
			if err != nil {
				return err
			}
			res.Seed = started.Seed
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// playOut drives a live battle with the policy until it ends or reaches maxTurns
func playOut(ctx context.Context, svc encounter.Service, battleID string, policy *randomPolicy, maxTurns int, sink *eventSink) (*battleResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		got, err := svc.GetBattle(ctx, &encounter.GetBattleInput{BattleID: battleID})
		if err != nil {
			return nil, err
		}
		st := got.State
		if st.Outcome.Decided() || st.Turn >= maxTurns {
			if !st.Outcome.Decided() {
				slog.Warn("Battle abandoned at turn limit",
					"battle_id", battleID,
					"turn", st.Turn,
				)
			}
			return summarize(st), nil
		}

		for _, action := range policy.choose(st) {
			_, err := svc.SubmitAction(ctx, &encounter.SubmitActionInput{BattleID: battleID, Action: action})
			if err != nil {
				return nil, errors.Wrapf(err, "battle %s rejected %s", battleID, action.MoveID)
			}
		}

		res, err := svc.ResolveTurn(ctx, &encounter.ResolveTurnInput{BattleID: battleID})
		if err != nil {
			return nil, err
		}
		sink.write(battleID, res.Events)
	}
}

func summarize(st *battle.State) *battleResult {
	r := &battleResult{
		BattleID: st.ID,
		Seed:     st.Seed,
		Turns:    st.Turn,
		Outcome:  st.Outcome,
	}
	switch st.Outcome {
	case battle.OutcomeSide1:
		r.Winner = st.Sides[0].Name
	case battle.OutcomeSide2:
		r.Winner = st.Sides[1].Name
	}
	return r
}

// eventSink serializes event lines from concurrent battles; a nil writer drops them
type eventSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func newEventSink(w io.Writer) *eventSink {
	if w == nil {
		return &eventSink{}
	}
	return &eventSink{enc: json.NewEncoder(w)}
}

// eventLine tags an event with its battle so interleaved output stays readable
type eventLine struct {
	BattleID string `json:"battle_id"`
	battle.Event
}

func (s *eventSink) write(battleID string, evts []battle.Event) {
	if s == nil || s.enc == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range evts {
		if err := s.enc.Encode(eventLine{BattleID: battleID, Event: e}); err != nil {
			slog.Warn("Failed to write event", "error", err)
			return
		}
	}
}
