package ptr

// NonZero возвращает nil для нулевого значения, иначе указатель на копию
// Удобно для полей с omitempty, которые не должны попадать в JSON до первого заполнения
func NonZero[T interface{ IsZero() bool }](v T) *T {
	if v.IsZero() {
		return nil
	}
	return &v
}
