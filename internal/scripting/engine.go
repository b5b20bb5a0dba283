package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/input"
)

// Engine wraps a single gopher-lua VM for tunable game formulas and the
// headless autopilot. Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
// Missing sub-directories are skipped, so an empty scripts dir yields an
// engine where every hook falls back to its Go default.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	for name, role := range map[string]component.Role{
		"ROLE_PLAYER_CRAFT": component.RolePlayerCraft,
		"ROLE_HAZARD":       component.RoleHazard,
		"ROLE_PROJECTILE":   component.RoleProjectile,
	} {
		vm.SetGlobal(name, lua.LNumber(role))
	}

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

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// ScaleCollisionDamage calls calc_collision_damage(ctx) where ctx holds
// victim_role, source_role and base. Without the script, or on any script
// error, the base damage is returned unchanged.
func (e *Engine) ScaleCollisionDamage(victim, source component.Role, base float32) float32 {
	fn, ok := e.vm.GetGlobal("calc_collision_damage").(*lua.LFunction)
	if !ok {
		return base
	}

	t := e.vm.NewTable()
	t.RawSetString("victim_role", lua.LNumber(victim))
	t.RawSetString("source_role", lua.LNumber(source))
	t.RawSetString("base", lua.LNumber(base))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_collision_damage error", zap.Error(err))
		return base
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_collision_damage returned non-number", zap.String("type", result.Type().String()))
		return base
	}
	return float32(n)
}

// PilotContext is what the autopilot script sees each frame.
type PilotContext struct {
	Frame        uint64
	Elapsed      float64
	HasCraft     bool
	Hazards      int
	NearestDist  float32 // distance to the closest hazard, 0 when none
	NearestAngle float32 // signed yaw from craft facing to that hazard, radians
	CraftHealth  float32
	Shielded     bool
	State        string
}

// PilotKeys calls pilot_controls(ctx) and reads the returned table of held
// keys. Without the script the craft gets no input.
func (e *Engine) PilotKeys(ctx PilotContext) input.Keys {
	fn, ok := e.vm.GetGlobal("pilot_controls").(*lua.LFunction)
	if !ok {
		return input.Keys{}
	}

	t := e.vm.NewTable()
	t.RawSetString("frame", lua.LNumber(ctx.Frame))
	t.RawSetString("elapsed", lua.LNumber(ctx.Elapsed))
	t.RawSetString("has_craft", lua.LBool(ctx.HasCraft))
	t.RawSetString("hazards", lua.LNumber(ctx.Hazards))
	t.RawSetString("nearest_dist", lua.LNumber(ctx.NearestDist))
	t.RawSetString("nearest_angle", lua.LNumber(ctx.NearestAngle))
	t.RawSetString("craft_health", lua.LNumber(ctx.CraftHealth))
	t.RawSetString("shielded", lua.LBool(ctx.Shielded))
	t.RawSetString("state", lua.LString(ctx.State))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua pilot_controls error", zap.Error(err))
		return input.Keys{}
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua pilot_controls returned non-table")
		return input.Keys{}
	}

	return input.Keys{
		Forward:   lBool(rt, "forward"),
		Backward:  lBool(rt, "backward"),
		YawLeft:   lBool(rt, "yaw_left"),
		YawRight:  lBool(rt, "yaw_right"),
		RollLeft:  lBool(rt, "roll_left"),
		RollRight: lBool(rt, "roll_right"),
		Fire:      lBool(rt, "fire"),
		Shield:    lBool(rt, "shield"),
		Pause:     lBool(rt, "pause"),
	}
}

// lBool reads a boolean field from a Lua table; nil and false are false.
func lBool(t *lua.LTable, key string) bool {
	return lua.LVAsBool(t.RawGetString(key))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
