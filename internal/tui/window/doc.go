// Package window computes the visible sub-range of a long record list.
//
// Rendering cost for very large master tables must stay bounded regardless of
// list length, so views materialize only the rows near the viewport plus a
// fixed overscan margin. Compute is a pure projection of (list length, row
// height, overscan, scroll offset, viewport height); it holds no state and is
// re-derived on every scroll or filter change. RecordFilter provides the
// prior filtering step, memoized so unrelated redraws do not rescan the list.
package window
