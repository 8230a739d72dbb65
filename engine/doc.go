// Package engine implements the task dispatch layer: routing a submitted
// task to one of a registered set of processing engines, and the
// registry those engines are discovered through.
//
// # Dispatch
//
// ChooseEngine is a pure function of file extension and requested
// backend. It never consults the registry — availability is checked
// separately by the caller (Dispatcher, via Registry.Resolve) after a
// name is chosen, so a
// requested-but-unavailable engine fails the task with a descriptive
// error rather than silently falling back.
//
// # Registry
//
// Engines register themselves at worker startup with a name, the file
// extensions they claim, and an IsAvailable predicate. This replaces the
// Python source's import-time try/except probing of optional modules
// with an explicit, inspectable table the API can expose verbatim
// (GET /engines).
package engine
