package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable combat and AI formulas.
// Single-goroutine access only (tick loop). A nil *Engine is valid and
// answers every hook with the built-in default.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "combat", "ai"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// NewEngineFromSource creates an engine from a single chunk of Lua source.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lua source: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DamageContext holds pre-packed data for one hit.
type DamageContext struct {
	Kind         string // melee, hand, shadow, range, skill
	SkillID      string
	Base         float64
	AttackerTeam int
	AttackerLife float64
	AttackerMax  float64
	TargetTeam   int
	TargetLife   float64
	TargetShield float64
	Shielding    bool
}

// CalcDamage calls the Lua calc_damage function. Missing hooks and script
// errors fall back to Base; negative results are clamped to zero.
func (e *Engine) CalcDamage(ctx DamageContext) float64 {
	if e == nil {
		return ctx.Base
	}
	fn := e.vm.GetGlobal("calc_damage")
	if fn == lua.LNil {
		return ctx.Base
	}

	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ctx.Kind))
	t.RawSetString("skill", lua.LString(ctx.SkillID))
	t.RawSetString("base", lua.LNumber(ctx.Base))

	atk := e.vm.NewTable()
	atk.RawSetString("team", lua.LNumber(ctx.AttackerTeam))
	atk.RawSetString("life", lua.LNumber(ctx.AttackerLife))
	atk.RawSetString("life_max", lua.LNumber(ctx.AttackerMax))
	t.RawSetString("attacker", atk)

	tgt := e.vm.NewTable()
	tgt.RawSetString("team", lua.LNumber(ctx.TargetTeam))
	tgt.RawSetString("life", lua.LNumber(ctx.TargetLife))
	tgt.RawSetString("shield", lua.LNumber(ctx.TargetShield))
	tgt.RawSetString("shielding", lua.LBool(ctx.Shielding))
	t.RawSetString("target", tgt)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_damage error", zap.Error(err))
		return ctx.Base
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_damage returned non-number", zap.String("type", result.Type().String()))
		return ctx.Base
	}
	if n < 0 {
		return 0
	}
	return float64(n)
}

// WanderContext holds pre-packed data for a monster choosing its idle pause.
type WanderContext struct {
	Template string
	Base     float64 // pause rolled from the game RNG, seconds
	Life     float64
	LifeMax  float64
}

// WanderPause calls the Lua wander_pause function and returns the pause in
// seconds. Falls back to Base.
func (e *Engine) WanderPause(ctx WanderContext) float64 {
	if e == nil {
		return ctx.Base
	}
	fn := e.vm.GetGlobal("wander_pause")
	if fn == lua.LNil {
		return ctx.Base
	}

	t := e.vm.NewTable()
	t.RawSetString("template", lua.LString(ctx.Template))
	t.RawSetString("base", lua.LNumber(ctx.Base))
	t.RawSetString("life", lua.LNumber(ctx.Life))
	t.RawSetString("life_max", lua.LNumber(ctx.LifeMax))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua wander_pause error", zap.Error(err))
		return ctx.Base
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	if n, ok := result.(lua.LNumber); ok && n >= 0 {
		return float64(n)
	}
	return ctx.Base
}

// HasHook reports whether a global Lua function is defined.
func (e *Engine) HasHook(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.vm.Close()
}
