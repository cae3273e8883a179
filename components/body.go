package components

// Body holds drawing properties of an entity.
type Body struct {
	Size float32 // scale of the unit triangle; 1 = 20px nose to tail
}
