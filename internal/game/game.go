// Package game is the entry point a host drives: create a game from a
// level, advance it tick by tick, and forward player commands.
package game

import (
	"fmt"
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/config"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/data"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/host"
	"github.com/l1jgo/arena/internal/navmesh"
	"github.com/l1jgo/arena/internal/scripting"
	"github.com/l1jgo/arena/internal/system"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// Game owns one simulation. It is not safe for concurrent use.
type Game struct {
	ws     *world.State
	runner *coresys.Runner
	log    *zap.Logger
	closed bool
}

// New builds the navmesh from level, spawns the player and monsters, and
// announces the level and the player to h. lua may be nil.
func New(cfg *config.Config, log *zap.Logger, h host.Host, tables *data.Tables, level *data.Level, lua *scripting.Engine) (*Game, error) {
	mesh, err := navmesh.New(level.Points(), level.Polygons)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", level.Name, err)
	}
	ws := world.NewState(cfg, mesh, tables, h, lua, log)

	ps := level.Player
	player, err := ws.SpawnPlayer(world.ActorSpec{
		Position: geom.V(ps.X, ps.Y),
		Team:     component.NewTeam(ps.Team, ps.Friends...),
		Life:     ps.Life,
		Shield:   ps.Shield,
		Speed:    ps.Speed,
		Radius:   ps.Radius,
		Weapon:   ps.Weapon,
		Skills:   ps.Skills,
		Shadow:   ps.Shadow,
	})
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", level.Name, err)
	}

	for i, ms := range level.Monsters {
		tmpl, err := tables.Monsters.Lookup(ms.Template)
		if err != nil {
			return nil, fmt.Errorf("level %q: monster %d: %w", level.Name, i, err)
		}
		if _, err := ws.SpawnMonster(tmpl, geom.V(ms.X, ms.Y), ms.Radians()); err != nil {
			return nil, fmt.Errorf("level %q: monster %d: %w", level.Name, i, err)
		}
	}
	for _, t := range level.Tiles {
		ws.AddTile(host.Tile{ID: t.ID, Kind: t.Kind, Position: geom.V(t.X, t.Y)})
	}

	runner := coresys.NewRunner()
	system.RegisterAll(runner, ws)

	h.DefineLevel(host.Level{
		Name:     level.Name,
		Vertices: level.Points(),
		Polygons: level.Polygons,
		Bounds:   mesh.Bounds(),
	})
	h.PlayerCreate(ws.Snapshot(player))

	log.Info("game created",
		zap.String("level", level.Name),
		zap.Int("monsters", len(level.Monsters)),
		zap.Int("tiles", len(level.Tiles)),
		zap.Int("systems", len(runner.Systems())),
	)
	return &Game{ws: ws, runner: runner, log: log}, nil
}

// Close despawns every entity and tells the host the player is gone.
// Later calls on the game are no-ops.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	ws := g.ws
	for _, id := range ws.Position.Entities() {
		ws.Despawn(id)
	}
	ws.ECS.FlushDestroyQueue()
	ws.Host.PlayerRemove(ws.Player)
	g.log.Info("game closed", zap.Uint64("ticks", g.runner.Ticks()), zap.Float64("clock", ws.Clock))
}

// Advance runs one tick of dt.
func (g *Game) Advance(dt time.Duration) {
	if g.closed || dt <= 0 {
		return
	}
	g.runner.Tick(dt)
}

// State exposes the simulation for hosts and tests that inspect it.
func (g *Game) State() *world.State { return g.ws }

func (g *Game) Player() ecs.EntityID { return g.ws.Player }

// Ticks returns the number of completed ticks.
func (g *Game) Ticks() uint64 { return g.runner.Ticks() }

// Clock returns simulated seconds since creation.
func (g *Game) Clock() float64 { return g.ws.Clock }
