package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/combat"
	"github.com/jwebster45206/rpg-engine/pkg/dice"
	"github.com/jwebster45206/rpg-engine/pkg/item"
	"github.com/jwebster45206/rpg-engine/pkg/quest"
	"github.com/jwebster45206/rpg-engine/pkg/storage"
	"github.com/jwebster45206/rpg-engine/pkg/world"
)

// LowHealth is the health at which autoplay rests before exploring again.
const LowHealth = 30

type playOptions struct {
	name   string
	seed   uint64
	turns  int
	resume bool
}

func newPlayCmd(opts *options) *cobra.Command {
	po := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Autoplay a game: explore, fight and use items until defeat or the world runs dry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if po.name == "" {
				return errors.New("--name is required")
			}
			ctx := context.Background()
			repo, cleanup, err := openRepo(ctx, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			seed, err := seedFor(po.seed)
			if err != nil {
				return err
			}

			out := printer{w: cmd.OutOrStdout()}
			p, err := startPlayer(ctx, repo, po, out)
			if err != nil {
				return err
			}

			w := world.New(p, dice.New(seed))
			autoplay(w, po.turns, out)

			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), statsPanel(p))

			if !p.IsAlive() {
				out.Render(Muted.Render("Progress since the last save is lost."))
				return nil
			}
			id, err := repo.SavePlayer(ctx, p)
			if err != nil {
				return err
			}
			out.Render(Good.Render(fmt.Sprintf("Game saved (save #%d).", id)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&po.name, "name", "n", "", "character name")
	cmd.Flags().Uint64Var(&po.seed, "seed", 0, "random seed (default $RNG_SEED, else random)")
	cmd.Flags().IntVar(&po.turns, "turns", 30, "maximum exploration turns")
	cmd.Flags().BoolVar(&po.resume, "resume", false, "continue from the character's latest save")
	return cmd
}

// startPlayer loads the latest save when resuming, otherwise creates a new
// character and saves it once.
func startPlayer(ctx context.Context, repo storage.PlayerStore, po *playOptions, out printer) (*actor.Player, error) {
	if po.resume {
		p, err := repo.LoadPlayer(ctx, po.name)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("no save found for %q", po.name)
			}
			return nil, err
		}
		out.Render(Title.Render(fmt.Sprintf("Welcome back, %s!", p.Name)))
		return p, nil
	}

	p := actor.NewPlayer(po.name)
	if _, err := repo.SavePlayer(ctx, p); err != nil {
		return nil, err
	}
	out.Render(Title.Render(fmt.Sprintf("Welcome, %s! Your adventure begins.", p.Name)))
	return p, nil
}

// autoplay runs up to turns exploration steps. It takes a quest every few
// turns, completes one after each win, uses found items at once and rests
// when health is low.
func autoplay(w *world.World, turns int, out world.Renderer) {
	for turn := range turns {
		p := w.Player
		if !p.IsAlive() {
			return
		}
		if len(w.Enemies()) == 0 && len(w.Items()) == 0 {
			out.Render("The land is quiet. There is nothing left to do.")
			return
		}

		if turn%5 == 0 {
			if _, msg, err := w.AssignQuest(); err == nil {
				out.Render(msg)
			}
		}
		if p.Health <= LowHealth {
			if msg, err := w.Heal(); err == nil {
				out.Render(msg)
			}
		}

		ex, err := w.Explore()
		if err != nil {
			out.Render(err.Error())
			return
		}
		out.Render(ex.Log...)

		switch {
		case ex.Enemy != nil:
			res, err := w.Battle()
			if err != nil {
				out.Render(err.Error())
				return
			}
			out.Render(res.Log...)
			if res.Outcome == combat.OutcomePlayerWon {
				_, msg, err := w.CompleteQuest()
				switch {
				case errors.Is(err, quest.ErrNoQuestsPending):
				case err != nil:
					out.Render(err.Error())
				default:
					out.Render(msg)
				}
			}
		case ex.Item != nil && ex.Item.Kind != item.KindInert:
			msg, err := w.UseItem(ex.Item.Name)
			if err != nil {
				out.Render(err.Error())
				continue
			}
			out.Render(msg)
		}
	}
}
