package generators

import (
	"crypto/sha256"
	"strings"
)

var (
	nameAdjectives = []string{
		"ancient", "bold", "brave", "bright", "calm", "clever", "crimson",
		"curious", "daring", "eager", "fierce", "gentle", "golden", "happy",
		"hidden", "humble", "jolly", "keen", "lively", "lucky", "mellow",
		"mighty", "noble", "patient", "proud", "quiet", "rapid", "silent",
		"swift", "tranquil", "vivid", "wild",
	}
	nameColours = []string{
		"amber", "azure", "black", "blue", "bronze", "cobalt", "copper",
		"coral", "cyan", "emerald", "fuchsia", "gold", "green", "indigo",
		"ivory", "jade", "lavender", "lime", "magenta", "maroon", "olive",
		"orange", "pearl", "plum", "red", "rose", "ruby", "scarlet",
		"silver", "teal", "violet", "white",
	}
	nameAnimals = []string{
		"badger", "bear", "beaver", "bison", "crane", "dolphin", "eagle",
		"falcon", "ferret", "fox", "gecko", "hare", "hawk", "heron",
		"ibis", "jaguar", "koala", "lemur", "lynx", "marmot", "marten",
		"otter", "owl", "panda", "puffin", "raven", "salmon", "seal",
		"stoat", "swan", "walrus", "wolf",
	}
)

// Name derives a deterministic adjective-colour-animal display name from a
// seed. The same seed always produces the same name.
func Name(seed string) (string, error) {
	sum := sha256.Sum256([]byte(seed))

	parts := []string{
		nameAdjectives[int(sum[0])%len(nameAdjectives)],
		nameColours[int(sum[1])%len(nameColours)],
		nameAnimals[int(sum[2])%len(nameAnimals)],
	}
	return strings.Join(parts, "-"), nil
}
