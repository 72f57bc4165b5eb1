package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/encounter"
)

var finishMaxTurns int

var finishCmd = &cobra.Command{
	Use:   "finish <battle-id>",
	Short: "Resume a stored battle and play it to the end",
	Long: `Load an unfinished battle from the configured store and keep playing it
with random moves. The battle continues from its saved random state.`,
	Args: cobra.ExactArgs(1),
	RunE: runFinish,
}

func init() {
	finishCmd.Flags().IntVar(&finishMaxTurns, "max-turns", defaultMaxTurns, "stop once the battle reaches this turn")
	finishCmd.Flags().BoolVar(&simEvents, "events", false, "print every battle event as a JSON line")
}

func runFinish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	resumed, err := rt.service.ResumeBattle(ctx, &encounter.ResumeBattleInput{BattleID: args[0]})
	if err != nil {
		return err
	}

	sink := newEventSink(nil)
	if simEvents {
		sink = newEventSink(cmd.OutOrStdout())
	}
	// offset the policy so a resumed battle does not repeat the choices of its first run
	policy := newRandomPolicy(resumed.State.Seed + int64(resumed.State.Turn))
	res, err := playOut(ctx, rt.service, resumed.State.ID, policy, finishMaxTurns, sink)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res)
	return nil
}
