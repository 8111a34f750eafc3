package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/l1jgo/typereg/internal/component"
	"github.com/l1jgo/typereg/internal/core/ecs"
)

// Target is the scene a script drives. world.State implements it.
type Target interface {
	Spawn(name string, kinds ...component.Kind) (ecs.EntityID, error)
	Attach(name string, k component.Kind) error
	Destroy(name string) error
	Count(k component.Kind) int
}

// Engine wraps a single gopher-lua VM running a scenario script.
// Single-goroutine access only (game loop).
//
// Scripts see these globals:
//
//	spawn(name, kind...)   -> true | nil, err
//	attach(name, kind...)  -> true | nil, err
//	destroy(name)          -> true | nil, err
//	count(kind)            -> number (raises on unknown kind)
//	log(msg)
//
// and may define on_tick(tick), called once per tick.
type Engine struct {
	vm     *lua.LState
	target Target
	log    *zap.Logger
}

func NewEngine(target Target, log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	e := &Engine{vm: vm, target: target, log: log}

	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("spawn", vm.NewFunction(e.luaSpawn))
	vm.SetGlobal("attach", vm.NewFunction(e.luaAttach))
	vm.SetGlobal("destroy", vm.NewFunction(e.luaDestroy))
	vm.SetGlobal("count", vm.NewFunction(e.luaCount))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))
	return e
}

// LoadFile runs a script file, defining its functions.
func (e *Engine) LoadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// LoadString runs script source directly.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	return nil
}

// OnTick calls the script's on_tick(tick). A missing on_tick is not an
// error. Runtime errors are logged and returned; the VM stays usable.
func (e *Engine) OnTick(tick uint64) error {
	fn := e.vm.GetGlobal("on_tick")
	if fn == lua.LNil {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(tick)); err != nil {
		e.log.Error("lua on_tick error", zap.Uint64("tick", tick), zap.Error(err))
		return fmt.Errorf("on_tick(%d): %w", tick, err)
	}
	return nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) luaSpawn(L *lua.LState) int {
	name := L.CheckString(1)
	kinds, ok := checkKinds(L, 2)
	if !ok {
		return 2
	}
	if _, err := e.target.Spawn(name, kinds...); err != nil {
		return pushErr(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

func (e *Engine) luaAttach(L *lua.LState) int {
	name := L.CheckString(1)
	kinds, ok := checkKinds(L, 2)
	if !ok {
		return 2
	}
	for _, k := range kinds {
		if err := e.target.Attach(name, k); err != nil {
			return pushErr(L, err)
		}
	}
	L.Push(lua.LTrue)
	return 1
}

func (e *Engine) luaDestroy(L *lua.LState) int {
	if err := e.target.Destroy(L.CheckString(1)); err != nil {
		return pushErr(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

func (e *Engine) luaCount(L *lua.LState) int {
	k, err := component.ParseKind(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LNumber(e.target.Count(k)))
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

// checkKinds parses kind names from argument from onward. On failure it has
// already pushed nil, err.
func checkKinds(L *lua.LState, from int) ([]component.Kind, bool) {
	var kinds []component.Kind
	for i := from; i <= L.GetTop(); i++ {
		k, err := component.ParseKind(L.CheckString(i))
		if err != nil {
			pushErr(L, err)
			return nil, false
		}
		kinds = append(kinds, k)
	}
	return kinds, true
}

func pushErr(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}
