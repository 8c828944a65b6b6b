// Package reactive provides observable values for components.
//
// A Signal holds a value and a set of subscribed Listeners. Writes that change
// the value mark every subscriber dirty; live sessions implement Listener and
// respond by re-rendering. An Owner scopes subscriptions to one mounted page
// so they are dropped when the page is unmounted.
//
//	count := reactive.NewCounter(0)
//	owner.Track(count)
//	count.Inc()   // owner's listener is marked dirty
package reactive
