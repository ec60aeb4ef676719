//go:build !unix

package archive

func isEXDEV(err error) bool {
	return false
}
