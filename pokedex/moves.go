package pokedex

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jbgaribay/poketerm/gamedata"
	"github.com/jbgaribay/poketerm/pokeapi"
	"github.com/jbgaribay/poketerm/render"
)

// moveRowCap bounds each move table before the summary line kicks in.
const moveRowCap = 20

// MoveKind selects one learn-method bucket of a learnset.
type MoveKind string

// Learn-method buckets. KindAll selects every bucket.
const (
	KindAll     MoveKind = "moves"
	KindLevelUp MoveKind = "learnset"
	KindMachine MoveKind = "tm"
	KindEgg     MoveKind = "egg"
	KindTutor   MoveKind = "tutor"
)

// LearnedMove is one row of a move table.
type LearnedMove struct {
	Name     string
	Type     string
	Category string
	Power    *int
	Accuracy *int
	PP       *int
	Level    int
}

// Learnset holds a creature's moves for one generation or game, split by
// learn method.
type Learnset struct {
	LevelUp []LearnedMove
	Machine []LearnedMove
	Egg     []LearnedMove
	Tutor   []LearnedMove

	// Filter is the human-readable description of the applied filter, either
	// a game title or "Generation N".
	Filter string
}

// Moves prints the move tables for kind, filtered to the given generation and
// optionally a specific game of that generation.
func (d *Dex) Moves(ctx context.Context, p *pokeapi.Pokemon, generation int, game string, kind MoveKind) error {
	ls, err := d.BuildLearnset(ctx, p, generation, game)
	if err != nil {
		return err
	}

	f := render.NewFrame(render.DefaultInterior)

	title, noun := moveKindTitle(kind)
	lines := f.Header(fmt.Sprintf("%s - %s %s",
		strings.ToUpper(p.Name), strings.ToUpper(ls.Filter), noun))

	var body []string
	if kind == KindAll {
		for _, part := range []struct {
			title string
			moves []LearnedMove
		}{
			{"LEVEL-UP MOVES", ls.LevelUp},
			{"TM/HM MOVES", ls.Machine},
			{"EGG MOVES", ls.Egg},
			{"MOVE TUTOR", ls.Tutor},
		} {
			if len(part.moves) == 0 {
				continue
			}

			body = append(body, d.moveTable(f, part.title, part.moves)...)
			body = append(body, f.Blank())
		}
	} else if moves := ls.kind(kind); len(moves) > 0 {
		body = d.moveTable(f, title, moves)
	}

	if len(body) == 0 {
		body = []string{f.Line(fmt.Sprintf("No %s found for %s", strings.ToLower(title), ls.Filter))}
	}

	lines = append(lines, body...)
	lines = append(lines, f.Bottom())
	d.print(lines)

	return nil
}

func (ls *Learnset) kind(kind MoveKind) []LearnedMove {
	switch kind {
	case KindLevelUp:
		return ls.LevelUp
	case KindMachine:
		return ls.Machine
	case KindEgg:
		return ls.Egg
	case KindTutor:
		return ls.Tutor
	default:
		return nil
	}
}

func moveKindTitle(kind MoveKind) (title, noun string) {
	switch kind {
	case KindLevelUp:
		return "LEVEL-UP MOVES", "LEVEL-UP MOVES"
	case KindMachine:
		return "TM/HM MOVES", "TM/HM MOVES"
	case KindEgg:
		return "EGG MOVES", "EGG MOVES"
	case KindTutor:
		return "MOVE TUTOR", "MOVE TUTOR"
	default:
		return "ALL MOVES", "LEARNSET"
	}
}

// BuildLearnset fetches move details for every move the creature knows and
// filters them to the version groups of the given generation (or one game of
// it). Moves introduced after the generation are excluded. Level-up moves are
// sorted by level and every bucket is de-duplicated by move name.
func (d *Dex) BuildLearnset(ctx context.Context, p *pokeapi.Pokemon, generation int, game string) (*Learnset, error) {
	groups, label := gamedata.VersionGroups(generation, game)

	ls := &Learnset{Filter: label}

	for _, entry := range p.Moves {
		detail, err := d.api.Move(ctx, entry.Move.Name)
		if err != nil {
			d.logger.DebugContext(ctx, "skipping move",
				slog.String("move", entry.Move.Name),
				slog.Any("error", err),
			)

			continue
		}

		if gamedata.GenerationNumber(detail.Generation.Name) > generation {
			continue
		}

		for _, vgd := range entry.VersionGroupDetails {
			if !slices.Contains(groups, vgd.VersionGroup.Name) {
				continue
			}

			move := LearnedMove{
				Name:     gamedata.DisplayName(entry.Move.Name),
				Type:     detail.Type.Name,
				Category: detail.DamageClass.Name,
				Power:    detail.Power,
				Accuracy: detail.Accuracy,
				PP:       detail.PP,
				Level:    vgd.LevelLearnedAt,
			}

			switch vgd.MoveLearnMethod.Name {
			case "level-up":
				ls.LevelUp = append(ls.LevelUp, move)
			case "machine", "tm":
				ls.Machine = append(ls.Machine, move)
			case "egg":
				ls.Egg = append(ls.Egg, move)
			case "tutor":
				ls.Tutor = append(ls.Tutor, move)
			}
		}
	}

	slices.SortStableFunc(ls.LevelUp, func(a, b LearnedMove) int {
		return a.Level - b.Level
	})

	ls.LevelUp = dedupeMoves(ls.LevelUp)
	ls.Machine = dedupeMoves(ls.Machine)
	ls.Egg = dedupeMoves(ls.Egg)
	ls.Tutor = dedupeMoves(ls.Tutor)

	return ls, nil
}

func dedupeMoves(moves []LearnedMove) []LearnedMove {
	seen := make(map[string]struct{}, len(moves))

	out := moves[:0]
	for _, m := range moves {
		if _, ok := seen[m.Name]; ok {
			continue
		}

		seen[m.Name] = struct{}{}
		out = append(out, m)
	}

	return out
}

func (d *Dex) moveTable(f render.Frame, title string, moves []LearnedMove) []string {
	withLevels := slices.ContainsFunc(moves, func(m LearnedMove) bool {
		return m.Level > 0
	})

	header := fmt.Sprintf("%-5s %-20s %-8s %-4s %-4s %-3s %-8s",
		"", "MOVE NAME", "TYPE", "POW", "ACC", "PP", "CATEGORY")
	if withLevels {
		header = fmt.Sprintf("%-5s %-20s %-8s %-4s %-4s %-3s %-8s",
			"LEVEL", "MOVE NAME", "TYPE", "POW", "ACC", "PP", "CATEGORY")
	}

	rows := make([]string, 0, len(moves))
	for _, m := range moves {
		level := "     "
		if m.Level > 0 {
			level = fmt.Sprintf("%-5s", fmt.Sprintf("Lv.%2d", m.Level))
		}

		name := m.Name
		if len(name) > 20 {
			name = name[:20]
		}

		rows = append(rows, fmt.Sprintf("%s %-20s %s %-4s %-4s %-3s %s",
			level, name, d.typeCell(m.Type),
			orDashes(m.Power), orDashes(m.Accuracy), orDashes(m.PP),
			d.categoryCell(m.Category)))
	}

	return f.Table(title, header, rows, moveRowCap, "moves")
}

// orDashes formats an optional stat, with "--" standing in for the nulls the
// API reports on status moves.
func orDashes(v *int) string {
	if v == nil {
		return "--"
	}

	return fmt.Sprintf("%d", *v)
}
