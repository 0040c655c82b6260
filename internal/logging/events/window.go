package events

import "github.com/atomicstack/webtop/internal/logging"

type WindowTracer struct{}

type DockTracer struct{}

type BrowserTracer struct{}

var (
	Window  = WindowTracer{}
	Dock    = DockTracer{}
	Browser = BrowserTracer{}
)

func (WindowTracer) Add(id, kind, title string, z int) {
	logging.Trace("window.add", map[string]interface{}{"id": id, "type": kind, "title": title, "z": z})
}

func (WindowTracer) Remove(id string) {
	logging.Trace("window.remove", map[string]interface{}{"id": id})
}

func (WindowTracer) Update(id string, fields []string) {
	logging.Trace("window.update", map[string]interface{}{"id": id, "fields": fields})
}

func (WindowTracer) Front(id string, z int) {
	logging.Trace("window.front", map[string]interface{}{"id": id, "z": z})
}

func (WindowTracer) Activate(id string) {
	logging.Trace("window.activate", map[string]interface{}{"id": id})
}

func (WindowTracer) Bulk(op string, count int) {
	logging.Trace("window.bulk", map[string]interface{}{"op": op, "count": count})
}

func (DockTracer) Add(id string) {
	logging.Trace("dock.add", map[string]interface{}{"id": id})
}

func (DockTracer) Remove(id string) {
	logging.Trace("dock.remove", map[string]interface{}{"id": id})
}

func (DockTracer) Restore(id string) {
	logging.Trace("dock.restore", map[string]interface{}{"id": id})
}

func (DockTracer) Close(id string) {
	logging.Trace("dock.close", map[string]interface{}{"id": id})
}

func (BrowserTracer) Navigate(id, url string) {
	logging.Trace("browser.navigate", map[string]interface{}{"id": id, "url": url})
}

func (BrowserTracer) Loaded(id, url string) {
	logging.Trace("browser.loaded", map[string]interface{}{"id": id, "url": url})
}

func (BrowserTracer) History(id, url string, delta int) {
	logging.Trace("browser.history", map[string]interface{}{"id": id, "url": url, "delta": delta})
}
