package playground

import "strconv"

func u64(v uint64) string {
	return strconv.FormatUint(v, 10)
}
