// Package prefixtree defines a 26-ary trie of lowercase keys that locates
// dictionary records in a source text.
//
// Every key is a non-empty string over the letters 'a'..'z'. A key is stored
// as a path of nodes, one node per letter. The node ending a key is terminal:
// it carries the record's position (the byte offset of the record in the
// source) and length (the byte length of the record's line).
//
// Each node also counts the records at or below it, so the number of indexed
// keys extending a prefix is read from a single node:
//
//	insert "car", "cat", "cap"
//
//	[c:3] -- [a:3] --+-- [p:1]*
//	                 |-- [r:1]*
//	                 `-- [t:1]*
//
//	PrefixCount("ca") == 3, Contains("ca") == false
//
// Counts track insert operations rather than distinct keys: inserting a key
// twice counts it twice and keeps the latest position/length, and removing it
// once undoes one of the inserts.
//
// A Tree is not safe for concurrent use.
package prefixtree
