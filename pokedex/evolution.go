package pokedex

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jbgaribay/poketerm/gamedata"
	"github.com/jbgaribay/poketerm/pokeapi"
	"github.com/jbgaribay/poketerm/render"
)

// Evolution chain layout. Sprite and arrow column widths are chosen so each
// horizontal row fills the wide interior exactly: 90+38+90 and 60+19*2+60*2.
const (
	twoStageSprite   = 90
	twoStageArrow    = 38
	twoStageHeight   = 45
	threeStageSprite = 60
	threeStageArrow  = 19
	threeStageHeight = 40
	singleSprite     = 80
	verticalSprite   = 60
)

// EvoStage is one node of a flattened evolution chain.
type EvoStage struct {
	Name        string
	Stage       int
	Requirement string
}

// Evolution prints a creature's full evolution chain with sprites and
// requirement-annotated arrows.
func (d *Dex) Evolution(ctx context.Context, p *pokeapi.Pokemon) error {
	species, err := d.api.SpeciesByURL(ctx, p.Species.URL)
	if err != nil {
		return err
	}

	chain, err := d.api.EvolutionChainByURL(ctx, species.EvolutionChain.URL)
	if err != nil {
		return err
	}

	stages := FlattenChain(chain)
	if len(stages) == 0 {
		return fmt.Errorf("empty evolution chain for %s", p.Name)
	}

	f := render.NewFrame(render.WideInterior)

	lines := f.Header(strings.ToUpper(p.Name) + " - EVOLUTION CHAIN")
	lines = append(lines, f.Section("Evolution chain", func() []string {
		return d.evolutionBody(ctx, f, stages)
	})...)
	lines = append(lines, f.Bottom())
	d.print(lines)

	return nil
}

// FlattenChain walks the chain depth first, numbering stages from 1 and
// resolving each link's first evolution detail into requirement text.
func FlattenChain(chain *pokeapi.EvolutionChain) []EvoStage {
	var stages []EvoStage

	var walk func(link pokeapi.ChainLink, stage int)
	walk = func(link pokeapi.ChainLink, stage int) {
		stages = append(stages, EvoStage{
			Name:        link.Species.Name,
			Stage:       stage,
			Requirement: requirementText(stage, link.EvolutionDetails),
		})

		for _, next := range link.EvolvesTo {
			walk(next, stage+1)
		}
	}

	walk(chain.Chain, 1)

	return stages
}

// requirementText renders a link's evolution conditions ("LEVEL 36",
// "USE THUNDER STONE", "TRADE Knows Double Hit"). The base form has none.
func requirementText(stage int, details []pokeapi.EvolutionDetail) string {
	if stage == 1 || len(details) == 0 {
		return ""
	}

	detail := details[0]

	var condition string
	switch {
	case detail.MinHappiness != nil:
		condition = fmt.Sprintf("Happiness %d", *detail.MinHappiness)
	case detail.TimeOfDay != "":
		condition = gamedata.DisplayName(detail.TimeOfDay) + " time"
	case detail.KnownMove != nil:
		condition = "Knows " + gamedata.DisplayName(detail.KnownMove.Name)
	case detail.Location != nil:
		condition = "At " + gamedata.DisplayName(detail.Location.Name)
	}

	var req string
	switch detail.Trigger.Name {
	case "level-up":
		req = "LEVEL UP"
		if detail.MinLevel != nil {
			req = fmt.Sprintf("LEVEL %d", *detail.MinLevel)
		}
	case "use-item":
		req = "USE ITEM"
		if detail.Item != nil {
			req = "USE " + strings.ToUpper(gamedata.DisplayName(detail.Item.Name))
		}
	case "trade":
		req = "TRADE"
		if detail.Item != nil {
			req += " with " + gamedata.DisplayName(detail.Item.Name)
		}
	default:
		req = strings.ToUpper(strings.ReplaceAll(detail.Trigger.Name, "-", " "))
		if req == "" {
			req = "???"
		}
	}

	if condition != "" {
		req += " " + condition
	}

	return req
}

func (d *Dex) evolutionBody(ctx context.Context, f render.Frame, stages []EvoStage) []string {
	switch len(stages) {
	case 1:
		return d.singleStage(ctx, f, stages[0])
	case 2:
		return d.horizontalStages(ctx, f, stages, twoStageSprite, twoStageArrow, twoStageHeight)
	case 3:
		return d.horizontalStages(ctx, f, stages, threeStageSprite, threeStageArrow, threeStageHeight)
	default:
		return d.verticalStages(ctx, f, stages)
	}
}

func (d *Dex) singleStage(ctx context.Context, f render.Frame, stage EvoStage) []string {
	lines := []string{
		f.Blank(),
		f.Center(gamedata.DisplayName(stage.Name) + " does not evolve"),
		f.Blank(),
	}

	sprite := d.stageSprite(ctx, stage.Name, singleSprite)
	for i, row := range sprite.Lines {
		if i == 30 {
			break
		}

		lines = append(lines, f.Center(row))
	}

	return append(lines, f.Blank())
}

// horizontalStages lays out two or three stages side by side, with each
// arrow column carrying the requirement text at 40% height and the arrow
// row directly beneath it.
func (d *Dex) horizontalStages(ctx context.Context, f render.Frame, stages []EvoStage, spriteWidth, arrowWidth, minHeight int) []string {
	sprites := make([]render.Block, len(stages))

	height := minHeight
	for i, stage := range stages {
		sprites[i] = d.stageSprite(ctx, stage.Name, spriteWidth)
		height = max(height, sprites[i].Height())
	}

	for i := range sprites {
		sprites[i] = sprites[i].Normalize(spriteWidth, height)
	}

	reqRow := height * 2 / 5
	arrow := centerCell(strings.Repeat("═", arrowWidth-6)+"►", arrowWidth)

	nameCells := make([]string, len(stages))
	for i, stage := range stages {
		nameCells[i] = centerCell(gamedata.DisplayName(stage.Name), spriteWidth)
	}

	lines := []string{
		f.Blank(),
		f.Blank(),
		f.Center(strings.Join(nameCells, strings.Repeat(" ", arrowWidth))),
		f.Blank(),
	}

	for y := range height {
		row := sprites[0].Lines[y]

		for i := 1; i < len(sprites); i++ {
			var gap string
			switch y {
			case reqRow:
				gap = centerCell(truncate(stages[i].Requirement, arrowWidth), arrowWidth)
			case reqRow + 1:
				gap = arrow
			default:
				gap = strings.Repeat(" ", arrowWidth)
			}

			row += gap + sprites[i].Lines[y]
		}

		lines = append(lines, f.Center(row))
	}

	return append(lines, f.Blank(), f.Blank())
}

// verticalStages handles branched or longer chains one stage per row.
func (d *Dex) verticalStages(ctx context.Context, f render.Frame, stages []EvoStage) []string {
	lines := []string{f.Blank(), f.Center("COMPLEX EVOLUTION CHAIN"), f.Blank()}

	for i, stage := range stages {
		lines = append(lines, f.Center(fmt.Sprintf("Stage %d: %s",
			stage.Stage, gamedata.DisplayName(stage.Name))))

		if stage.Requirement != "" {
			lines = append(lines, f.Center("("+stage.Requirement+")"))
		}

		sprite := d.stageSprite(ctx, stage.Name, verticalSprite)
		for j, row := range sprite.Lines {
			if j == 20 {
				break
			}

			lines = append(lines, f.Center(row))
		}

		if i < len(stages)-1 {
			lines = append(lines, f.Center("↓"), f.Blank())
		}
	}

	return append(lines, f.Blank())
}

// stageSprite resolves a species name to its sprite block, degrading to the
// renderer's placeholder when the creature or its sprite cannot be fetched.
func (d *Dex) stageSprite(ctx context.Context, name string, width int) render.Block {
	p, err := d.api.Pokemon(ctx, name)
	if err != nil {
		d.logger.DebugContext(ctx, "stage lookup failed",
			slog.String("name", name),
			slog.Any("error", err),
		)

		return render.Sprite(nil, width)
	}

	return d.sprite(ctx, p, width)
}
