package ubj

import "github.com/imdario/mergo"

// mergoMerge fills zero-valued fields of dst from defaults, the pattern
// damianoneill/net uses (via imdario/mergo) to combine a user-supplied
// partial config with built-in defaults.
func mergoMerge(dst, defaults interface{}) error {
	return mergo.Merge(dst, defaults)
}
