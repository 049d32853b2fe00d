package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/udisondev/powerengine/internal/config"
	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/dice"
	"github.com/udisondev/powerengine/internal/engine"
	"github.com/udisondev/powerengine/internal/game/ranking"
	"github.com/udisondev/powerengine/internal/model"
)

type command struct {
	eng   *engine.Engine
	cfg   config.Engine
	seed  uint64
	store store
	chars map[string]*model.Character
	all   []*model.Character
	out   io.Writer
}

func (c *command) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "sheet":
		if len(args) != 1 {
			return errUsage
		}
		return c.sheet(args[0])
	case "rank":
		return c.rank(ctx)
	case "duel":
		if len(args) != 2 {
			return errUsage
		}
		return c.duel(ctx, args[0], args[1])
	case "npc":
		if len(args) != 2 {
			return errUsage
		}
		return c.npc(args[0], args[1])
	case "breakthrough":
		if len(args) != 1 {
			return errUsage
		}
		return c.breakthrough(ctx, args[0])
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func (c *command) character(id string) (*model.Character, error) {
	ch, ok := c.chars[id]
	if !ok {
		return nil, fmt.Errorf("character %q not found", id)
	}
	return ch, nil
}

type sheetView struct {
	ID          string            `json:"id"`
	Realm       string            `json:"realm"`
	Attributes  model.Attributes  `json:"attributes"`
	Stats       model.CombatStats `json:"stats"`
	Score       int64             `json:"score"`
	Potential   int64             `json:"potential"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
}

func (c *command) sheet(id string) error {
	ch, err := c.character(id)
	if err != nil {
		return err
	}
	res, err := c.eng.Aggregate(ch)
	if err != nil {
		return err
	}
	content := c.eng.Content()
	score := ranking.Score(ranking.ProfileFor(content, ch, res.Attributes, res.Stats))

	view := sheetView{
		ID:         ch.ID,
		Realm:      content.Ladder().RealmName(ch.Cultivation),
		Attributes: res.Attributes,
		Stats:      res.Stats,
		Score:      score,
		Potential:  ranking.Potential(score, ch.AgeYears),
	}
	for _, d := range res.Diagnostics {
		view.Diagnostics = append(view.Diagnostics, d.String())
	}
	return writeJSON(c.out, view)
}

func (c *command) rank(ctx context.Context) error {
	lb, err := c.eng.RankPopulation(ctx, c.all, c.cfg.Workers)
	if err != nil {
		return err
	}
	if err := c.store.SaveSnapshot(ctx, lb); err != nil {
		return err
	}
	return writeJSON(c.out, lb.Top(c.cfg.TopN))
}

func (c *command) duel(ctx context.Context, aID, bID string) error {
	a, err := c.character(aID)
	if err != nil {
		return err
	}
	b, err := c.character(bID)
	if err != nil {
		return err
	}
	report, err := c.eng.Duel(ctx, a, b, c.cfg.DuelMaxTurns)
	if err != nil {
		return err
	}
	return writeJSON(c.out, report)
}

func (c *command) npc(npcID, opponentID string) error {
	npc, err := c.character(npcID)
	if err != nil {
		return err
	}
	if !npc.IsNPC {
		slog.Warn("deciding for a player character", "character", npc.ID)
	}
	opp, err := c.character(opponentID)
	if err != nil {
		return err
	}
	rng := dice.NewFor(c.seed, "npc", npc.ID, opp.ID)
	d, err := c.eng.DecideNpcAction(npc, opp, rng)
	if err != nil {
		return err
	}
	return writeJSON(c.out, map[string]string{
		"action":        d.Action.String(),
		"skill":         d.SkillID,
		"justification": d.Justification,
	})
}

func (c *command) breakthrough(ctx context.Context, id string) error {
	ch, err := c.character(id)
	if err != nil {
		return err
	}
	rolled, err := c.eng.Breakthrough(ch)
	if err != nil {
		return err
	}
	if err := c.store.Save(ctx, ch); err != nil {
		return err
	}

	type rollView struct {
		Target data.Stat `json:"target"`
		Value  float64   `json:"value"`
	}
	rolls := make([]rollView, 0, len(rolled))
	for _, b := range rolled {
		rolls = append(rolls, rollView{Target: b.Target, Value: b.Magnitude})
	}
	return writeJSON(c.out, map[string]any{
		"id":    ch.ID,
		"realm": c.eng.Content().Ladder().RealmName(ch.Cultivation),
		"rolls": rolls,
	})
}
