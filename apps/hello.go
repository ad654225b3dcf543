//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package apps

import (
	"github.com/markkurossi/os3/kernel"
	"github.com/markkurossi/os3/user"
)

func hello(env *kernel.Env) int32 {
	user.Println(env, "Hello, world!")
	return 0
}

func fault(env *kernel.Env) int32 {
	user.Println(env, "Into Test fault, the kernel should kill this application!")
	var counts map[string]int
	counts["fault"]++
	return 0
}
