// Package tabstore serializes all access to a tab-sync storage engine
// through a single dispatch goroutine. The storage handle is owned
// exclusively by that goroutine; callers on arbitrary goroutines submit
// operations and observe results through one-shot Pending handles, so no
// caller can ever see the handle mid-mutation or half-initialized.
package tabstore
