package ubj

import "sigs.k8s.io/yaml"

// DumpYAML renders an already-decoded value tree as YAML for ad-hoc
// inspection in tests and tooling. It is not part of the wire protocol
// and is never called from the decode/encode/pprint paths; Object
// values are converted to a plain map so yaml.Marshal (which goes
// through encoding/json internally) has something it knows how to walk.
func DumpYAML(v interface{}) ([]byte, error) {
	return yaml.Marshal(toPlain(v))
}

func toPlain(v interface{}) interface{} {
	switch v := v.(type) {
	case Object:
		m := make(map[string]interface{}, v.Len())
		v.Iter()(func(k string, val interface{}) bool {
			m[k] = toPlain(val)
			return true
		})
		return m
	case Array:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = toPlain(e)
		}
		return out
	case Huge:
		return string(v)
	case Bytes:
		return string(v)
	case NoOp:
		return nil
	default:
		return v
	}
}
