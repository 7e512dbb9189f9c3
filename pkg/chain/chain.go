// Package chain implements the z-chain conversion served by the development API.
//
// The input is split into groups: a 'z' (either case) opens a group that keeps
// absorbing the next character for as long as its last character is a 'z';
// any other character is a group of its own. Letters are worth 1 to 26,
// everything else 0, and a group is worth the sum of its characters.
//
// The groups are then walked: a group worth N is followed by the sum of the
// next N groups, and the walk resumes after them. Zero sums are dropped.
package chain

// Groups splits s into z-chain groups.
func Groups(s string) []string {
	runes := []rune(s)
	var groups []string
	for i := 0; i < len(runes); {
		start := i
		i++
		if isZ(runes[start]) {
			for i < len(runes) && isZ(runes[i-1]) {
				i++
			}
		}
		groups = append(groups, string(runes[start:i]))
	}
	return groups
}

// Value is the sum of the letter values in group.
func Value(group string) int {
	sum := 0
	for _, r := range group {
		sum += letter(r)
	}
	return sum
}

// Process converts s into its sequence of portion sums.
func Process(s string) []int {
	groups := Groups(s)
	values := make([]int, len(groups))
	for i, g := range groups {
		values[i] = Value(g)
	}

	out := []int{}
	for i := 0; i < len(values); {
		n := values[i]
		end := min(i+1+n, len(values))
		sum := 0
		for _, v := range values[i+1 : end] {
			sum += v
		}
		if sum != 0 {
			out = append(out, sum)
		}
		i += 1 + n
	}
	return out
}

func isZ(r rune) bool {
	return r == 'z' || r == 'Z'
}

func letter(r rune) int {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 1
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 1
	}
	return 0
}
