package persist

import (
	"context"
	"fmt"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/host"
	"go.uber.org/zap"
)

// CombatSink receives flushed combat-log batches. *CombatLogRepo is the
// production sink.
type CombatSink interface {
	Write(ctx context.Context, rows []CombatRow) error
}

// CombatLog forwards every notification to the wrapped host and buffers
// damage, death and resurrection outcomes. Buffered rows are written to the
// sink every flushEvery ticks; the simulation never reads them back.
type CombatLog struct {
	host.Host

	sink       CombatSink
	log        *zap.Logger
	run        string
	flushEvery int

	tick    uint64
	pending []CombatRow
}

var _ host.Host = (*CombatLog)(nil)

func NewCombatLog(next host.Host, sink CombatSink, run string, flushEvery int, log *zap.Logger) *CombatLog {
	if flushEvery <= 0 {
		flushEvery = 1
	}
	return &CombatLog{
		Host:       next,
		sink:       sink,
		log:        log,
		run:        run,
		flushEvery: flushEvery,
	}
}

func (c *CombatLog) record(event string, entity, other ecs.EntityID, amount float64, kind string) {
	c.pending = append(c.pending, CombatRow{
		Run:    c.run,
		Tick:   c.tick,
		Event:  event,
		Entity: uint64(entity),
		Other:  uint64(other),
		Amount: amount,
		Kind:   kind,
	})
}

func (c *CombatLog) Damage(attacker, target ecs.EntityID, amount float64, kind component.DamageKind) {
	c.record("damage", target, attacker, amount, kind.String())
	c.Host.Damage(attacker, target, amount, kind)
}

func (c *CombatLog) Death(id, killer ecs.EntityID) {
	c.record("death", id, killer, 0, "")
	c.Host.Death(id, killer)
}

func (c *CombatLog) Resurrect(id ecs.EntityID) {
	c.record("resurrect", id, 0, 0, "")
	c.Host.Resurrect(id)
}

// Pending returns the number of buffered rows.
func (c *CombatLog) Pending() int { return len(c.pending) }

// EndTick marks the end of a simulation tick and flushes on the cadence.
// A failed flush keeps the rows for the next attempt.
func (c *CombatLog) EndTick(ctx context.Context) error {
	c.tick++
	if c.tick%uint64(c.flushEvery) != 0 {
		return nil
	}
	return c.Flush(ctx)
}

// Flush writes every buffered row.
func (c *CombatLog) Flush(ctx context.Context) error {
	if len(c.pending) == 0 {
		return nil
	}
	if err := c.sink.Write(ctx, c.pending); err != nil {
		return fmt.Errorf("flush combat log at tick %d: %w", c.tick, err)
	}
	c.log.Debug("combat log flushed", zap.Int("rows", len(c.pending)), zap.Uint64("tick", c.tick))
	c.pending = c.pending[:0]
	return nil
}
