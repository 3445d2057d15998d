package registry

// Float64 returns the value under path as a float64, widening stored
// int and int64 values. Absence fails with *MissingParameterError and a
// non-numeric value with *WrongTypeError.
func (r *Registry) Float64(path string) (float64, error) {
	v, err := r.Get(path)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, &WrongTypeError{Path: path, Want: "float64", Got: v}
	}
}

// Int returns the value under path as an int. Only int and int64 values
// qualify; floats are not truncated silently.
func (r *Registry) Int(path string) (int, error) {
	v, err := r.Get(path)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, &WrongTypeError{Path: path, Want: "int", Got: v}
	}
}
