package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/encounter"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <battle-id>",
	Short: "Print a stored battle",
	Long:  `Print the latest snapshot of a battle from the configured store, or from the archive once it has ended.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the full snapshot as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	got, err := rt.service.GetBattle(cmd.Context(), &encounter.GetBattleInput{BattleID: args[0]})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inspectJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(got.State); err != nil {
			return errors.Wrap(err, "failed to encode battle")
		}
		return nil
	}
	printState(out, got.State)
	return nil
}

func printState(w io.Writer, st *battle.State) {
	fmt.Fprintf(w, "battle %s  turn %d  outcome %s  seed %d\n", st.ID, st.Turn, st.Outcome, st.Seed)

	f := st.Field
	if f.Weather != "" {
		fmt.Fprintf(w, "weather %s (%d)\n", f.Weather, f.WeatherTurns)
	}
	if f.Terrain != "" {
		fmt.Fprintf(w, "terrain %s (%d)\n", f.Terrain, f.TerrainTurns)
	}
	if f.TrickRoomTurns > 0 {
		fmt.Fprintf(w, "trick room (%d)\n", f.TrickRoomTurns)
	}

	for i, side := range st.Sides {
		fmt.Fprintf(w, "\nside %d: %s%s\n", i+1, side.Name, sideConditions(&f, i))
		for j, c := range side.Party {
			marker := " "
			if j == side.Active {
				marker = "*"
			}
			fmt.Fprintf(w, " %s %-6s %-12s L%-3d %4d/%-4d %s\n",
				marker, c.ID, c.Name, c.Level, c.HP, c.Stats.HP, combatantConditions(c))
		}
	}

	if len(st.Pending) > 0 {
		fmt.Fprintln(w, "\npending:")
		for _, a := range st.Pending {
			fmt.Fprintf(w, "  %s %s %s\n", a.CombatantID, a.Kind, actionTarget(a))
		}
	}
}

func sideConditions(f *battle.Field, side int) string {
	var parts []string
	for hazard, layers := range f.Sides[side].Hazards {
		if layers > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", hazard, layers))
		}
	}
	for screen, turns := range f.Sides[side].Screens {
		if turns > 0 {
			parts = append(parts, fmt.Sprintf("%s (%d)", screen, turns))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	sort.Strings(parts)
	return "  [" + strings.Join(parts, ", ") + "]"
}

func combatantConditions(c *battle.Combatant) string {
	if c.Fainted {
		return "fainted"
	}
	var parts []string
	for kind := range c.Volatiles {
		parts = append(parts, string(kind))
	}
	for stat, stage := range c.Stages {
		if stage != 0 {
			parts = append(parts, fmt.Sprintf("%s%+d", stat, stage))
		}
	}
	sort.Strings(parts)
	if c.Status != "" {
		parts = append([]string{string(c.Status)}, parts...)
	}
	return strings.Join(parts, " ")
}

func actionTarget(a battle.Action) string {
	switch a.Kind {
	case battle.ActionSwitch:
		return fmt.Sprintf("-> %d", a.SwitchTo)
	case battle.ActionItem:
		return fmt.Sprintf("%s -> %d", a.ItemID, a.ItemTarget)
	default:
		return a.MoveID
	}
}
