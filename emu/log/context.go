package log

import "sync"

// ContextAdder adds fields to every log entry, for example the current
// emulated time.
type ContextAdder interface {
	AddLogContext(entry *EntryZ)
}

var (
	ctxmu    sync.RWMutex
	contexts []ContextAdder
)

func AddContext(c ContextAdder) {
	ctxmu.Lock()
	contexts = append(contexts, c)
	ctxmu.Unlock()
}

func RemoveContext(c ContextAdder) {
	ctxmu.Lock()
	defer ctxmu.Unlock()
	for i := range contexts {
		if contexts[i] == c {
			contexts = append(contexts[:i], contexts[i+1:]...)
			return
		}
	}
}

func addContexts(e *EntryZ) {
	ctxmu.RLock()
	for _, c := range contexts {
		c.AddLogContext(e)
	}
	ctxmu.RUnlock()
}
