package cache

// KeyWriteups is the key of the full catalog list.
const KeyWriteups = "writeups"

// KeyWriteup returns the key of a single writeup lookup.
func KeyWriteup(slug string) string {
	return "writeup:" + slug
}
