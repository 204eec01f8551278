package main

import (
	"fmt"

	"github.com/aglyzov/prefixidx/prefixtree"
)

func main() {
	t := prefixtree.New()
	_ = t.Insert("car", 0, 12)
	_ = t.Insert("cat", 13, 30)
	_ = t.Insert("cap", 44, 7)
	_ = t.Insert("cats", 52, 19)
	_ = t.Insert("dog", 72, 10)

	fmt.Printf("keys: %v (%d inserts)\n", t.Keys(), t.Len())
	fmt.Printf("prefix count ca   -> %d\n", t.PrefixCount("ca"))
	fmt.Printf("contains ca       -> %v\n", t.Contains("ca"))
	fmt.Printf("position/length cat -> %d/%d\n", t.Position("cat"), t.Length("cat"))
	fmt.Printf("position xyz      -> %d\n", t.Position("xyz"))

	println("------")

	visitor := func(e prefixtree.Entry) bool {
		fmt.Printf("%s at (%d,%d)\n", e.Key, e.Position, e.Length)
		return true
	}
	t.Iter("cat", visitor)

	println("------")

	if err := t.Remove("cat"); err != nil {
		panic(err)
	}
	fmt.Printf("after removing cat: %v, contains cats -> %v\n", t.Keys(), t.Contains("cats"))

	if err := t.Remove("cat"); err != nil {
		fmt.Println("removing cat again:", err)
	}

	st := t.Stats()
	fmt.Printf("nodes=%d records=%d branches=%d depth=%d\n", st.Nodes, st.Records, st.Branches, st.MaxDepth)
}
