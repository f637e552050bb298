package topology

import (
	"context"
	"fmt"

	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
)

// Terminal names with a fixed meaning.
const (
	TerminalOut   = "out"
	TerminalYes   = "yes"
	TerminalNo    = "no"
	TerminalInput = "in[]"
)

func isSourceTerminal(t string) bool {
	switch t {
	case TerminalOut, TerminalYes, TerminalNo:
		return true
	}
	return false
}

// NormalizeWires swaps the endpoints of wires authored target-first: a
// source endpoint whose terminal is not an output terminal ("out", "yes",
// "no") trades places with the target. When both ends carry non-output
// terminals swapping would not fix the direction, so the wire is kept as
// authored; a wire like {src: "error", tgt: "in[]"} therefore binds as a
// stream source from the src node instead of being swapped into a global
// variable wire. This keeps the function idempotent. It edits wires in place.
func NormalizeWires(wires []model.Wire) []model.Wire {
	for i := range wires {
		w := &wires[i]
		if w.Src == nil || !w.Src.HasTerminal() || isSourceTerminal(w.Src.Terminal) {
			continue
		}
		if w.Tgt != nil && w.Tgt.HasTerminal() && !isSourceTerminal(w.Tgt.Terminal) {
			continue
		}
		w.Src, w.Tgt = w.Tgt, w.Src
	}
	return wires
}

// Bind attaches normalized wires to the components they target. Components
// are keyed by the position of their node in the topology.
//
// A wire whose target terminal is anything but the default input is a
// global variable wire: the source component's last parameter is removed
// and copied into the target's parameter of the same name when that still
// holds a placeholder. Unless ForwardAllGlobals is set, binding stops after
// the first such wire.
func (b *Builder) Bind(ctx context.Context, components map[int]*model.Component, wires []model.Wire) {
	logger := ctxlog.FromContext(ctx)

	for i, w := range wires {
		if w.Src == nil || w.Tgt == nil {
			b.report("wire", i, "", "wire needs both src and tgt")
			continue
		}
		src, ok := components[w.Src.Node]
		if !ok {
			b.report("wire", i, "", fmt.Sprintf("source node %d is not a materialized node", w.Src.Node))
			continue
		}
		tgt, ok := components[w.Tgt.Node]
		if !ok {
			b.report("wire", i, "", fmt.Sprintf("target node %d is not a materialized node", w.Tgt.Node))
			continue
		}

		if w.Tgt.HasTerminal() && w.Tgt.Terminal != TerminalInput {
			b.forwardGlobal(i, src, tgt)
			logger.Debug("Global variable wire processed.", "wire", i, "from", src.AbstractionID, "to", tgt.AbstractionID)
			if b.opts.ForwardAllGlobals {
				continue
			}
			if rest := len(wires) - i - 1; rest > 0 {
				b.report("wire", i, "", fmt.Sprintf("binding stopped after global variable wire; %d later wires were not bound", rest))
			}
			return
		}

		source := model.Source{
			SourceID: src.AbstractionID,
			Grouping: model.GroupingShuffle,
		}
		if w.Src.HasTerminal() && w.Src.Terminal != TerminalOut {
			source.StreamID = w.Src.Terminal
		}
		tgt.Sources = append(tgt.Sources, source)
		logger.Debug("Wire bound.", "wire", i, "source", source.SourceID, "stream", source.StreamID, "target", tgt.AbstractionID)
	}
}

func (b *Builder) forwardGlobal(wire int, src, tgt *model.Component) {
	key, value, ok := src.Params.Pop()
	if !ok {
		b.report("wire", wire, "", fmt.Sprintf("global variable source %s has no parameters to forward", src.AbstractionID))
		return
	}
	current, ok := tgt.Params.Get(key)
	if !ok {
		b.report("wire", wire, key, fmt.Sprintf("global variable target %s has no parameter %q", tgt.AbstractionID, key))
		return
	}
	if current == PlaceholderWired || current == PlaceholderNone {
		tgt.Params.Set(key, value)
	}
}
