// Package formats manages the catalog of meeting-minutes formats.
//
// The Manager keeps an in-memory snapshot of every format record and is the
// only place the single-selection rule is enforced: once bootstrapped,
// exactly one record is selected. Commands update the snapshot immediately
// and hand persistence to a background writer, so what callers observe
// always leads what is stored. Writes for the same record are applied in the
// order they were issued; failures are logged and never surfaced.
//
// Records persist in canonical form. Built-in formats carry localization
// keys, custom formats carry literal text, and Resolve turns either into a
// DisplayRecord at read time. Nothing resolved is ever written back.
//
// Subscribe replaces reloading the catalog after a change: long-lived
// embedders re-render from the events it delivers, published under the same
// lock as the snapshot change they describe. The one-shot CLI reads the
// snapshot directly and does not subscribe.
//
// A Manager constructed without a Repository runs in memory only, which is
// how the CLI degrades when the local store cannot be opened.
package formats
