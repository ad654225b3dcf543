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

// PowerModulus is the modulus of the power applications.
const PowerModulus = 998244353

// PowerIterations returns the exponent computed by power_p.
func PowerIterations(p uint64) uint64 {
	switch p {
	case 5:
		return 140000
	case 7:
		return 160000
	default:
		return 200000
	}
}

const (
	powerBufLen   = 100
	powerProgress = 10000
)

// power computes p^n mod PowerModulus in a ring buffer, reporting
// progress and yielding the CPU every powerProgress steps.
func power(p uint64) func(env *kernel.Env) int32 {
	return func(env *kernel.Env) int32 {
		iter := PowerIterations(p)

		var s [powerBufLen]uint64
		var cur int
		s[cur] = 1
		for i := uint64(1); i <= iter; i++ {
			next := (cur + 1) % powerBufLen
			s[next] = s[cur] * p % PowerModulus
			cur = next
			if i%powerProgress == 0 {
				user.Printf(env, "power_%d [%d/%d]\n", p, i, iter)
				user.Yield(env)
			}
		}
		user.Printf(env, "%d^%d = %d(MOD %d)\n", p, iter, s[cur],
			PowerModulus)
		user.Printf(env, "Test power_%d OK!\n", p)
		return 0
	}
}
