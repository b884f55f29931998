package uregex_test

import (
	"fmt"

	"github.com/coregx/uregex"
)

func ExamplePattern_Matcher() {
	pat := uregex.MustCompile(`(\w+)@(\w+)`, 0)
	m := pat.Matcher("alice@example")
	if ok, _ := m.Find(); ok {
		user, _, _ := m.Group(1)
		host, _, _ := m.Group(2)
		fmt.Println(user, host)
	}
	// Output: alice example
}

func ExamplePattern_Split() {
	pat := uregex.MustCompile(`\s*,\s*`, 0)
	parts := pat.Split("red, green,blue ,  yellow", -1)
	fmt.Println(parts)
	// Output: [red green blue yellow]
}

func ExampleMatcher_ReplaceAll() {
	pat := uregex.MustCompile(`(?<user>\w+)@(?<host>\w+)`, 0)
	m := pat.Matcher("alice@example, bob@work")
	out, _ := m.ReplaceAll("${host}/${user}")
	fmt.Println(out)
	// Output: example/alice, work/bob
}
