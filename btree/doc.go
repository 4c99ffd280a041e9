/*
Package btree provides a persistent, rope-focused B+ sum-tree.

The package is intentionally not a generic map/set container. It is
specialized for sequence storage with positional editing and persistent
(copy-on-write) updates: every mutating operation returns a new tree that
shares all untouched subtrees with its predecessor. Readers holding an older
tree keep a fully consistent snapshot.

Building blocks:
  - summary and dimension interfaces with monoid aggregation,
  - item-to-summary linkage at the type level (`item.Summary()`),
  - distinct `leafNode` and `innerNode` representations with cached
    subtree item counts,
  - summary-guided seek (`Cursor`) and prefix aggregation (`PrefixSummary`),
  - recursive path-copy insert with split propagation,
  - path-copy split with subtree sharing,
  - structural, height-aware concat/join,
  - delete with sibling borrow/merge rebalancing.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
