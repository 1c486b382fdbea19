package persist

import (
	"context"
	"errors"
	"testing"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memSink struct {
	batches [][]CombatRow
	err     error
}

func (m *memSink) Write(_ context.Context, rows []CombatRow) error {
	if m.err != nil {
		return m.err
	}
	m.batches = append(m.batches, append([]CombatRow(nil), rows...))
	return nil
}

func TestCombatLogBuffersAndForwards(t *testing.T) {
	rec := host.NewRecorder()
	sink := &memSink{}
	cl := NewCombatLog(rec, sink, "run-1", 3, zap.NewNop())
	ctx := context.Background()
	a, b := ecs.NewEntityID(1, 0), ecs.NewEntityID(2, 0)

	cl.Damage(a, b, 4, component.DamageMelee)
	cl.ShieldActivate(b)
	require.NoError(t, cl.EndTick(ctx))
	cl.Death(b, a)
	require.NoError(t, cl.EndTick(ctx))
	assert.Equal(t, 2, cl.Pending())
	assert.Empty(t, sink.batches)

	cl.Resurrect(b)
	require.NoError(t, cl.EndTick(ctx))
	require.Len(t, sink.batches, 1)
	assert.Zero(t, cl.Pending())

	rows := sink.batches[0]
	require.Len(t, rows, 3)
	assert.Equal(t, CombatRow{Run: "run-1", Tick: 0, Event: "damage", Entity: 2, Other: 1, Amount: 4, Kind: "melee"}, rows[0])
	assert.Equal(t, "death", rows[1].Event)
	assert.Equal(t, uint64(1), rows[1].Tick)
	assert.Equal(t, "resurrect", rows[2].Event)

	assert.Equal(t, []string{"Damage", "ShieldActivate", "Death", "Resurrect"},
		[]string{rec.Events[0].Name, rec.Events[1].Name, rec.Events[2].Name, rec.Events[3].Name})
}

func TestCombatLogKeepsRowsOnFailure(t *testing.T) {
	sink := &memSink{err: errors.New("db down")}
	cl := NewCombatLog(host.Nop{}, sink, "run-2", 1, zap.NewNop())
	ctx := context.Background()

	cl.Death(ecs.NewEntityID(1, 0), 0)
	err := cl.EndTick(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, sink.err)
	assert.Equal(t, 1, cl.Pending())

	sink.err = nil
	require.NoError(t, cl.Flush(ctx))
	assert.Zero(t, cl.Pending())
	require.NoError(t, cl.Flush(ctx), "empty flush is a no-op")
	assert.Len(t, sink.batches, 1)
}
