package utils

var CurrentVersion = "dev"

func IfElse[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

func UnwrapOrDefault[T any](v *T, d T) T {
	if v == nil {
		return d
	}
	return *v
}

func TruncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
