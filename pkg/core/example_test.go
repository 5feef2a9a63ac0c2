package core_test

import (
	"fmt"

	"github.com/wordmask/wordmask/pkg/core"
)

// ExampleNew builds a filter from an in-memory list and compares policies.
func ExampleNew() {
	f := core.New([]string{"信用卡", "信用", "代还", "套现"})

	fmt.Println(f.Find("花呗信用卡代还OK套现", core.ShortestMatch))
	fmt.Println(f.Find("花呗信用卡代还OK套现", core.LongestMatch))
	fmt.Println(f.Replace("信用卡之家", core.ShortestMatch, '*'))
	// Output:
	// [代还 信用 套现]
	// [代还 信用卡 套现]
	// **卡之家
}

// ExampleReplaceSensitiveWords uses the process-wide dictionary.
func ExampleReplaceSensitiveWords() {
	fmt.Println(core.ReplaceSensitiveWords("马上套现, 明天还套现", core.ShortestMatch, '*'))
	// Output: 马上**, 明天还**
}
