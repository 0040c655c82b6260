package events

import "github.com/atomicstack/webtop/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type DragTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
	Drag    = DragTracer{}
)

func (UITracer) MenuOpen(label string, index int) {
	logging.Trace("menu.open", map[string]interface{}{"label": label, "index": index})
}

func (UITracer) MenuEnter(menuLabel, itemLabel, action string) {
	logging.Trace("menu.enter", map[string]interface{}{
		"menu":   menuLabel,
		"item":   itemLabel,
		"action": action,
	})
}

func (UITracer) Switch(query, target string) {
	logging.Trace("switcher.select", map[string]interface{}{"query": query, "target": target})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (DragTracer) Start(id string, x, y int) {
	logging.Trace("drag.start", map[string]interface{}{"id": id, "x": x, "y": y})
}

func (DragTracer) Commit(id string, x, y int) {
	logging.Trace("drag.commit", map[string]interface{}{"id": id, "x": x, "y": y})
}

func (DragTracer) Cancel(id string) {
	logging.Trace("drag.cancel", map[string]interface{}{"id": id})
}

type FilterTracer struct{}

var Filter = FilterTracer{}

func (FilterTracer) Append(level, query string) {
	logging.Trace("filter.append", map[string]interface{}{"level": level, "query": query})
}

func (FilterTracer) Backspace(level, query string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": level, "query": query})
}

func (FilterTracer) WordBackspace(level, query string) {
	logging.Trace("filter.word_backspace", map[string]interface{}{"level": level, "query": query})
}

func (FilterTracer) Cleared(level string) {
	logging.Trace("filter.cleared", map[string]interface{}{"level": level})
}

func (FilterTracer) Cursor(level string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": level, "pos": pos})
}

type PromptTracer struct{}

var Prompt = PromptTracer{}

func (PromptTracer) Open(kind, target string) {
	logging.Trace("prompt.open", map[string]interface{}{"kind": kind, "target": target})
}

func (PromptTracer) Submit(kind, target, value string) {
	logging.Trace("prompt.submit", map[string]interface{}{"kind": kind, "target": target, "value": value})
}

func (PromptTracer) Cancel(kind, target, reason string) {
	logging.Trace("prompt.cancel", map[string]interface{}{"kind": kind, "target": target, "reason": reason})
}
