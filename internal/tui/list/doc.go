// Package listview implements the virtualized list shared by every pfadmin
// table screen. It materializes only the rows near the viewport, as computed
// by the window package, so master tables stay responsive with tens of
// thousands of records. All screens use this one component; none carries its
// own windowing arithmetic.
package listview
