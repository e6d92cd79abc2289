package api

// Vec is the homogeneous vector type spec.md §6.1 requires "over byte,
// val, valtype, functype, globaltype, memorytype, exporttype, externtype":
// one generic shape instead of the Wasm C API's eight hand-written
// wasm_*_vec_t structs, since Go generics express the same "array + length"
// contract without repeating it per element type.
type Vec[T any] struct {
	items []T
}

// NewEmptyVec returns a zero-length Vec, matching wasm_*_vec_new_empty.
func NewEmptyVec[T any]() *Vec[T] {
	return &Vec[T]{}
}

// NewUninitializedVec returns a Vec of length size whose elements are
// each T's zero value, matching wasm_*_vec_new_uninitialized.
func NewUninitializedVec[T any](size int) *Vec[T] {
	return &Vec[T]{items: make([]T, size)}
}

// NewVec returns a Vec holding a copy of data, matching wasm_*_vec_new
// (size, data): the embedding standard's vector always takes ownership of
// its own backing storage rather than aliasing the caller's.
func NewVec[T any](data []T) *Vec[T] {
	items := make([]T, len(data))
	copy(items, data)
	return &Vec[T]{items: items}
}

// Len returns the vector's element count.
func (v *Vec[T]) Len() int { return len(v.items) }

// At returns the element at i.
func (v *Vec[T]) At(i int) T { return v.items[i] }

// Set assigns the element at i.
func (v *Vec[T]) Set(i int, val T) { v.items[i] = val }

// Slice exposes the vector's contents as a plain Go slice, for callers
// that want to range over it directly.
func (v *Vec[T]) Slice() []T { return v.items }

// Copy returns a Vec holding an independent copy of v's elements,
// matching wasm_*_vec_copy.
func (v *Vec[T]) Copy() *Vec[T] {
	return NewVec(v.items)
}

// Delete releases v's backing storage, matching wasm_*_vec_delete. Go's
// garbage collector reclaims the memory; Delete exists so a caller that
// follows the embedding standard's delete-after-use discipline observes an
// empty vector rather than a live one.
func (v *Vec[T]) Delete() { v.items = nil }

// The concrete vector aliases the standard names (§6.1): over raw bytes,
// value-kinds, and every type descriptor this package exposes.
type (
	ByteVec       = Vec[byte]
	ValVec        = Vec[uint64]
	ValTypeVec    = Vec[*ValType]
	FuncTypeVec   = Vec[*FuncType]
	GlobalTypeVec = Vec[*GlobalType]
	MemoryTypeVec = Vec[*MemoryType]
	ExportTypeVec = Vec[*ExportType]
	ExternTypeVec = Vec[*ExternType]
)
