package matrix

// AdmittanceStamper is what a network element needs to stamp itself.
type AdmittanceStamper interface {
	AddComplexElement(i, j int, value complex128) error // 0-based indexing
}
