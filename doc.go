// Package verity is a fluent, composable validation engine for in-memory
// values: scalars, maps, structs and slices, typically fresh out of a JSON or
// YAML decoder. Callers build predicate checks addressed by property path and
// the engine either raises the first failure or aggregates a path-to-message
// report, depending on the mode.
//
// Design policy:
//   - Keep only public APIs in the root package; pooling internals live under
//     internal/.
//   - Place the reusable rule registry under rules/, message templating under
//     message/, and input decoding under source/.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	t := verity.New(verity.NextPath)
//	t.Value(form).Prop("name").Is().AString("name must be a string")
//	t.Value(form).Prop("age").Is().InRange(18, 99)
//	if !t.Result().IsValid() {
//		for _, p := range t.Result().Paths() {
//			log.Println(p, t.Result().ErrorAt(p))
//		}
//	}
//
// A Validator is consumed by its first navigation or terminal call, so each
// fluent chain starts from a fresh Value call; the Result is shared across
// all of them. In Throw mode, wrap chains in Guard to receive the raised
// *Failure as an error.
package verity
