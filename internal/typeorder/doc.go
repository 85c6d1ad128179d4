// Package typeorder remembers the order in which node categories are first
// discovered during one consolidation run and sorts identity keys by it.
//
// Keys are collapsed into categories through a Classifier table (pattern ->
// category), so aliases such as "CustomEmbed-1" and "custom_embed_2" share
// one slot in the discovered order. Classification only affects ordering;
// it never makes two keys the same node.
//
// A Tracker belongs to exactly one run. It is not safe for concurrent use.
package typeorder
