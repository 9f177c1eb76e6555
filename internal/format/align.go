package format

// Pad4 returns the on-disk size of a padded string field of nominal length n.
// The console rounds n-1 up to the next multiple of four and then adds one
// more word when n-1 is already aligned, so a field never ends on its last
// significant byte.
//
// Example:
//
//	Pad4(3)  = 4
//	Pad4(5)  = 8
//	Pad4(21) = 24
//	Pad4(65) = 68
func Pad4(n int) int {
	return n - 1 + 4 - (n-1)%4
}
