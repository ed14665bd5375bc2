package i

// CodeGenerator mints short human-shareable game codes. Codes are not assumed
// unique; the coordinator negotiates uniqueness against the store and asks
// again on collision.
type CodeGenerator interface {
	NewCode() (string, error)
}
