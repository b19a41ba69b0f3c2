//go:build !gmp

package sequence

func registerOptional(*Factory) {}
