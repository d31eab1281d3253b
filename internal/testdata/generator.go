// Package testdata builds member fixtures for tests and the --demo mode.
package testdata

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/memberadmin/internal/member"
)

// Numbered returns n records named U1..Un with ids "1".."n".
func Numbered(n int) []member.Record {
	out := make([]member.Record, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, member.Record{
			ID:    member.ID(fmt.Sprint(i)),
			Name:  fmt.Sprintf("U%d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
			Role:  "member",
		})
	}
	return out
}

// IDs returns the ids of records in order.
func IDs(records []member.Record) []member.ID {
	out := make([]member.ID, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// Names returns the names of records in order.
func Names(records []member.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

var (
	firstNames = []string{"Aaron", "Aishwarya", "Arvind", "Caterina", "Chetan", "Jim", "Kalyan", "Kavya", "Laxmi", "Mohan", "Neha", "Rahul", "Rohit", "Sneha", "Vikram"}
	lastNames  = []string{"Miles", "Naik", "Rao", "Binotto", "Jain", "McClain", "Sharma", "Iyer", "Verma", "Kumar"}
)

// Demo returns n random members with uuid ids. Roughly one in five is an
// admin. A seed of 0 picks a random seed.
func Demo(n int, seed uint64) []member.Record {
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1))
	out := make([]member.Record, 0, n)
	for range n {
		first := firstNames[rng.IntN(len(firstNames))]
		last := lastNames[rng.IntN(len(lastNames))]
		role := "member"
		if rng.IntN(5) == 0 {
			role = "admin"
		}
		out = append(out, member.Record{
			ID:    member.ID(uuid.NewString()),
			Name:  first + " " + last,
			Email: strings.ToLower(first) + "@mailinator.com",
			Role:  role,
		})
	}
	return out
}
