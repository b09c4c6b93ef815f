//go:build !darwin && !freebsd && !linux && !windows

package native

type systemLoader struct{}

func (systemLoader) Open(path string) (Library, error) {
	return nil, ErrUnsupported
}
